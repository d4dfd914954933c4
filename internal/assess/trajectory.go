package assess

import (
	"github.com/banshee-data/allision.report/internal/geo"
	"github.com/banshee-data/allision.report/internal/site"
)

const (
	// stationarySpeedKn guards against meaningless course projections:
	// below this speed a vessel is treated as stationary.
	stationarySpeedKn = 0.5

	// cpaHorizonMinutes bounds the CPA scan.
	cpaHorizonMinutes = 60

	// cpaPastMinimumStop ends the scan once this many consecutive minutes
	// past the running minimum show increasing distance. This finds the
	// first local minimum, not necessarily the global one over the
	// horizon; changing it changes reported CPA times.
	cpaPastMinimumStop = 5

	// approachLookaheadMinutes is the look-ahead used by the classifier's
	// approaching test.
	approachLookaheadMinutes = 5
)

// DefaultHorizonsMinutes are the trajectory projection horizons.
var DefaultHorizonsMinutes = []int{5, 10, 15}

// ProjectTrajectory projects the vessel's position at each horizon along a
// straight constant-speed track and reports the distance to the bridge
// centroid at each point. Output order follows the horizon list.
func ProjectTrajectory(bridge *site.Bridge, report VesselReport, horizonsMinutes []int) []TrajectoryPoint {
	trajectory := make([]TrajectoryPoint, 0, len(horizonsMinutes))
	for _, t := range horizonsMinutes {
		p := geo.Project(report.Position, report.SpeedKn, report.CourseDeg, float64(t))
		trajectory = append(trajectory, TrajectoryPoint{
			TimeMinutes:        t,
			Position:           p,
			DistanceToBridgeNm: geo.Distance(p, bridge.Position),
		})
	}
	return trajectory
}

// ClosestApproach finds the closest point of approach to a fixed target by
// sampling the projected track at 1-minute steps over the scan horizon.
// A vessel under the stationary threshold yields its current distance at
// time zero and is never approaching.
func ClosestApproach(report VesselReport, target geo.Point) CPAResult {
	currentDistance := geo.Distance(report.Position, target)

	if report.SpeedKn < stationarySpeedKn {
		return CPAResult{DistanceNm: currentDistance, TimeMinutes: 0, Approaching: false}
	}

	minDistance := currentDistance
	minDistanceTime := 0

	for t := 1; t <= cpaHorizonMinutes; t++ {
		future := geo.Project(report.Position, report.SpeedKn, report.CourseDeg, float64(t))
		futureDistance := geo.Distance(future, target)

		if futureDistance < minDistance {
			minDistance = futureDistance
			minDistanceTime = t
		}

		// Distance opening back up after the minimum means CPA is behind us.
		if t > minDistanceTime+cpaPastMinimumStop && futureDistance > minDistance {
			break
		}
	}

	return CPAResult{
		DistanceNm:  minDistance,
		TimeMinutes: minDistanceTime,
		Approaching: minDistance < currentDistance && minDistanceTime > 0,
	}
}

// IsApproaching reports whether a short look-ahead puts the vessel closer
// to the target than it is now. Always false under the stationary
// threshold.
func IsApproaching(report VesselReport, target geo.Point) bool {
	if report.SpeedKn <= stationarySpeedKn {
		return false
	}
	future := geo.Project(report.Position, report.SpeedKn, report.CourseDeg, approachLookaheadMinutes)
	return geo.Distance(future, target) < geo.Distance(report.Position, target)
}
