package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/allision.report/internal/geo"
	"github.com/banshee-data/allision.report/internal/site"
)

func TestProjectTrajectory(t *testing.T) {
	t.Parallel()

	bridge := site.MustLoadDefault()
	report := VesselReport{
		Position:  geo.Point{Lat: 42.34, Lon: -71.02},
		SpeedKn:   10,
		CourseDeg: 315, // northwest, toward the bridge
	}

	trajectory := ProjectTrajectory(bridge, report, DefaultHorizonsMinutes)
	require.Len(t, trajectory, 3)

	// Sequence order follows the horizon list.
	assert.Equal(t, 5, trajectory[0].TimeMinutes)
	assert.Equal(t, 10, trajectory[1].TimeMinutes)
	assert.Equal(t, 15, trajectory[2].TimeMinutes)

	// Closing on the bridge, each horizon should be nearer than the last.
	currentDistance := geo.Distance(report.Position, bridge.Position)
	assert.Less(t, trajectory[0].DistanceToBridgeNm, currentDistance)
	assert.Less(t, trajectory[1].DistanceToBridgeNm, trajectory[0].DistanceToBridgeNm)
	assert.Less(t, trajectory[2].DistanceToBridgeNm, trajectory[1].DistanceToBridgeNm)
}

func TestProjectTrajectoryCustomHorizons(t *testing.T) {
	t.Parallel()

	bridge := site.MustLoadDefault()
	report := VesselReport{Position: geo.Point{Lat: 42.3, Lon: -71.0}, SpeedKn: 6, CourseDeg: 90}

	trajectory := ProjectTrajectory(bridge, report, []int{1, 30})
	require.Len(t, trajectory, 2)
	assert.Equal(t, 1, trajectory[0].TimeMinutes)
	assert.Equal(t, 30, trajectory[1].TimeMinutes)
}

func TestClosestApproachStationary(t *testing.T) {
	t.Parallel()

	target := geo.Point{Lat: 42.385, Lon: -71.0476}
	report := VesselReport{
		Position:  geo.Point{Lat: 42.40, Lon: -71.02},
		SpeedKn:   0.2,
		CourseDeg: 200, // course is meaningless at this speed
	}

	cpa := ClosestApproach(report, target)
	assert.Equal(t, 0, cpa.TimeMinutes)
	assert.False(t, cpa.Approaching)
	assert.Equal(t, geo.Distance(report.Position, target), cpa.DistanceNm)
}

func TestClosestApproachHeadOn(t *testing.T) {
	t.Parallel()

	// Two nm due south of the target, heading due north at 12 kn:
	// CPA should be near zero at about ten minutes.
	target := geo.Point{Lat: 42.385, Lon: -71.0476}
	report := VesselReport{
		Position:  geo.Point{Lat: target.Lat - 2.0/60, Lon: target.Lon},
		SpeedKn:   12,
		CourseDeg: 0,
	}

	cpa := ClosestApproach(report, target)
	assert.True(t, cpa.Approaching)
	assert.InDelta(t, 10, cpa.TimeMinutes, 1)
	assert.Less(t, cpa.DistanceNm, 0.1)
}

func TestClosestApproachHeadingAway(t *testing.T) {
	t.Parallel()

	target := geo.Point{Lat: 42.385, Lon: -71.0476}
	report := VesselReport{
		Position:  geo.Point{Lat: 42.40, Lon: -71.0476},
		SpeedKn:   10,
		CourseDeg: 0, // due north, directly away
	}

	cpa := ClosestApproach(report, target)
	assert.False(t, cpa.Approaching)
	assert.Equal(t, 0, cpa.TimeMinutes)
	assert.Equal(t, geo.Distance(report.Position, target), cpa.DistanceNm)
}

func TestClosestApproachAbeamPassage(t *testing.T) {
	t.Parallel()

	// Track passes 0.5 nm abeam of the target: the scan should find a
	// minimum close to the abeam distance, strictly in the future.
	target := geo.Point{Lat: 42.385, Lon: -71.0476}
	start := geo.Project(target, 60, 180, 3)            // 3 nm south of target
	offset := geo.Project(start, 30, 90, 1)             // 0.5 nm east of the track
	report := VesselReport{Position: offset, SpeedKn: 10, CourseDeg: 0}

	cpa := ClosestApproach(report, target)
	assert.True(t, cpa.Approaching)
	assert.Greater(t, cpa.TimeMinutes, 0)
	assert.InDelta(t, 0.5, cpa.DistanceNm, 0.05)
}

func TestIsApproaching(t *testing.T) {
	t.Parallel()

	target := geo.Point{Lat: 42.385, Lon: -71.0476}

	t.Run("closing vessel", func(t *testing.T) {
		t.Parallel()
		report := VesselReport{
			Position:  geo.Point{Lat: target.Lat - 1.0/60, Lon: target.Lon},
			SpeedKn:   10,
			CourseDeg: 0,
		}
		assert.True(t, IsApproaching(report, target))
	})

	t.Run("departing vessel", func(t *testing.T) {
		t.Parallel()
		report := VesselReport{
			Position:  geo.Point{Lat: target.Lat + 1.0/60, Lon: target.Lon},
			SpeedKn:   10,
			CourseDeg: 0,
		}
		assert.False(t, IsApproaching(report, target))
	})

	t.Run("stationary vessel is never approaching", func(t *testing.T) {
		t.Parallel()
		report := VesselReport{
			Position:  geo.Point{Lat: target.Lat - 1.0/60, Lon: target.Lon},
			SpeedKn:   0.3,
			CourseDeg: 0,
		}
		assert.False(t, IsApproaching(report, target))
	})
}
