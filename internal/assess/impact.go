package assess

import (
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/allision.report/internal/geo"
	"github.com/banshee-data/allision.report/internal/site"
)

// Physical constants for the AASHTO-style impact formula.
const (
	knotsToFtPerSec      = 1.688
	lateralImpactCoeff   = 1.2  // C: lateral impact coefficient
	gravityFtPerSec2     = 32.2 // g
	groundingThresholdFt = -10  // UKC deficit beyond which the vessel grounds
	marginalClearanceFt  = 5    // UKC below which clearance is flagged as marginal
)

// dwtByLength maps reported vessel length (metres) to an estimated
// deadweight tonnage. Ordered largest threshold first; strict greater-than.
// A coarse proxy, not a hydrostatic calculation.
var dwtByLength = []struct {
	minLengthM float64
	dwtTons    float64
}{
	{250, 50000},
	{150, 20000},
	{100, 10000},
	{50, 3000},
}

const dwtLengthFloor = 1000 // vessels at or under 50m

// dwtByShipType is the fallback ladder when no length was reported.
// Keyword match is a case-insensitive substring test, first entry wins.
var dwtByShipType = []struct {
	keywords []string
	dwtTons  float64
}{
	{[]string{"CARGO", "CONTAINER"}, 15000},
	{[]string{"TANKER"}, 20000},
	{[]string{"PASSENGER", "FERRY"}, 1000},
}

const dwtTypeDefault = 5000

// draftByDWT maps estimated deadweight to an estimated draft in feet.
var draftByDWT = []struct {
	minDWTTons float64
	draftFt    float64
}{
	{50000, 45},
	{20000, 35},
	{10000, 28},
	{5000, 22},
	{1000, 15},
}

const draftFloorFt = 10

// EstimateDeadweight estimates vessel deadweight tonnage from AIS data.
// With a known length the length ladder applies; otherwise the ship-type
// keyword ladder. Width is reported by AIS but carries no signal the
// length buckets don't already capture.
func EstimateDeadweight(shipType string, lengthM, widthM float64) float64 {
	if lengthM == 0 {
		upper := strings.ToUpper(shipType)
		for _, row := range dwtByShipType {
			for _, kw := range row.keywords {
				if strings.Contains(upper, kw) {
					return row.dwtTons
				}
			}
		}
		return dwtTypeDefault
	}

	for _, row := range dwtByLength {
		if lengthM > row.minLengthM {
			return row.dwtTons
		}
	}
	return dwtLengthFloor
}

// EstimateDraft estimates vessel draft in feet from deadweight tonnage.
func EstimateDraft(dwtTons float64) float64 {
	for _, row := range draftByDWT {
		if dwtTons > row.minDWTTons {
			return row.draftFt
		}
	}
	return draftFloorFt
}

// GroundingCheck returns whether the vessel would ground at the pier and
// the under-keel clearance in feet (negative = deficit). Grounding requires
// a deficit beyond 10 ft: vessels routinely operate at shallow positive or
// small negative clearance in this model.
func GroundingCheck(draftFt, waterDepthFt float64) (willGround bool, clearanceFt float64) {
	clearanceFt = waterDepthFt - draftFt
	willGround = clearanceFt < groundingThresholdFt
	return willGround, clearanceFt
}

// ImpactForce returns the estimated lateral impact force in kips using the
// AASHTO simplified formula P = V²·DWT·C / (2g).
func ImpactForce(dwtTons, speedKn float64) float64 {
	speedFps := speedKn * knotsToFtPerSec
	return (speedFps * speedFps * dwtTons * lateralImpactCoeff) / (2 * gravityFtPerSec2)
}

// DCRatio returns the demand/capacity ratio of an impact against a pier.
// Zero capacity yields zero rather than dividing; real site configuration
// always carries a positive capacity.
func DCRatio(impactKips, capacityKips float64) float64 {
	if capacityKips == 0 {
		return 0
	}
	return impactKips / capacityKips
}

// CoarseStatus maps a D/C ratio to an informational status label.
func CoarseStatus(dcRatio float64) (StatusLabel, string) {
	switch {
	case dcRatio >= 1.0:
		return StatusCritical, "Impact exceeds lateral pier capacity"
	case dcRatio >= 0.75:
		return StatusWarning, "Impact approaching lateral capacity"
	case dcRatio >= 0.5:
		return StatusWatch, "Significant lateral impact force"
	default:
		return StatusNormal, "Impact within safe limits"
	}
}

// Analyze produces the structural-impact analysis for a vessel report
// against the given bridge: nearest pier, distances, estimated deadweight
// and draft, grounding check, and D/C ratio. When the vessel will ground,
// impact force and D/C are exactly zero — a grounded vessel never reaches
// the pier.
func Analyze(bridge *site.Bridge, report VesselReport) VesselAnalysis {
	pier, distanceToPier := bridge.NearestPier(report.Position)
	distanceToBridge := geo.Distance(report.Position, bridge.Position)

	dwt := EstimateDeadweight(report.ShipType, report.LengthM, report.WidthM)
	draft := EstimateDraft(dwt)
	willGround, clearance := GroundingCheck(draft, pier.WaterDepthFt)

	analysis := VesselAnalysis{
		PierID:             pier.ID,
		PierName:           pier.Name,
		DistanceToPierNm:   distanceToPier,
		DistanceToBridgeNm: distanceToBridge,
		DeadweightTons:     dwt,
		DraftFt:            draft,
		WaterDepthFt:       pier.WaterDepthFt,
		ClearanceFt:        clearance,
		WillGround:         willGround,
		PierCapacityKips:   pier.LateralCapacityKips,
	}

	if willGround {
		analysis.Status = StatusGrounded
		analysis.Description = fmt.Sprintf("Vessel will ground before pier (UKC deficit: %.1f ft)", math.Abs(clearance))
		return analysis
	}

	analysis.ImpactForceKips = ImpactForce(dwt, report.SpeedKn)
	analysis.DCRatio = DCRatio(analysis.ImpactForceKips, pier.LateralCapacityKips)
	analysis.Status, analysis.Description = CoarseStatus(analysis.DCRatio)

	if clearance < marginalClearanceFt {
		analysis.Description += fmt.Sprintf(" | Marginal clearance (UKC: %+.1f ft)", clearance)
	}

	return analysis
}
