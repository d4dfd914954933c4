package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateProbabilityCollisionCourse(t *testing.T) {
	t.Parallel()

	report := VesselReport{SpeedKn: 18}
	analysis := VesselAnalysis{
		DCRatio:          1.4,
		DistanceToPierNm: 0.8,
		ClearanceFt:      7,
	}
	cpa := CPAResult{DistanceNm: 0.05, TimeMinutes: 3, Approaching: true}

	p := EstimateProbability(report, analysis, cpa)

	// trajectory 0.9, grounding 0, maneuver 0.5, severity 1.0
	assert.InDelta(t, 0.45, p.BaseProbability, 1e-9)
	assert.InDelta(t, 0.45, p.Probability, 1e-9)
	assert.InDelta(t, 45.0, p.Percent, 1e-9)
	assert.Equal(t, 1.0, p.SeverityFactor)
	assert.Equal(t, ProbabilityHigh, p.Category)
	assert.Contains(t, p.Factors.Trajectory, "collision course")
	assert.Contains(t, p.Factors.Severity, "pier failure")
}

func TestEstimateProbabilitySafePassage(t *testing.T) {
	t.Parallel()

	report := VesselReport{SpeedKn: 12}
	analysis := VesselAnalysis{DCRatio: 0.9, DistanceToPierNm: 3, ClearanceFt: 12}
	cpa := CPAResult{DistanceNm: 0.8, TimeMinutes: 15, Approaching: true}

	p := EstimateProbability(report, analysis, cpa)

	// CPA beyond 0.5 nm zeroes the trajectory factor, and a zero
	// trajectory factor means high confidence the vessel is safe.
	assert.Zero(t, p.Probability)
	assert.Equal(t, ProbabilityNegligible, p.Category)
	assert.Equal(t, ConfidenceHigh, p.Confidence)
	assert.Contains(t, p.Factors.Trajectory, "safe passage")
}

func TestEstimateProbabilityGroundingSuppresses(t *testing.T) {
	t.Parallel()

	report := VesselReport{SpeedKn: 10}
	analysis := VesselAnalysis{
		WillGround:       true,
		DCRatio:          0,
		DistanceToPierNm: 0.8,
		ClearanceFt:      -12,
	}
	cpa := CPAResult{DistanceNm: 0.05, TimeMinutes: 5, Approaching: true}

	p := EstimateProbability(report, analysis, cpa)

	// trajectory 0.9 × (1 − 0.95) × maneuver 0.5 = 0.0225, × severity 0.3
	assert.InDelta(t, 0.0225, p.BaseProbability, 1e-9)
	assert.InDelta(t, 0.00675, p.Probability, 1e-9)
	assert.Equal(t, ProbabilityNegligible, p.Category)
	assert.Equal(t, ConfidenceHigh, p.Confidence, "near-certain grounding gives high confidence")
	assert.Contains(t, p.Factors.Grounding, "will likely ground")
}

func TestEstimateProbabilityTrajectoryBuckets(t *testing.T) {
	t.Parallel()

	report := VesselReport{SpeedKn: 18}
	analysis := VesselAnalysis{DCRatio: 1.2, DistanceToPierNm: 0.8, ClearanceFt: 10}

	cases := []struct {
		cpaNm    float64
		wantBase float64 // trajectory factor × 1 × 0.5 maneuver
	}{
		{0.6, 0.0},
		{0.4, 0.1},
		{0.2, 0.25},
		{0.05, 0.45},
	}
	for _, tc := range cases {
		cpa := CPAResult{DistanceNm: tc.cpaNm, TimeMinutes: 4, Approaching: true}
		p := EstimateProbability(report, analysis, cpa)
		assert.InDelta(t, tc.wantBase, p.BaseProbability, 1e-9, "cpa=%v", tc.cpaNm)
	}
}

func TestEstimateProbabilityManeuverBuckets(t *testing.T) {
	t.Parallel()

	analysis := VesselAnalysis{DCRatio: 1.2, DistanceToPierNm: 2, ClearanceFt: 10}
	cpa := CPAResult{DistanceNm: 0.05, TimeMinutes: 4, Approaching: true}

	cases := []struct {
		name     string
		speedKn  float64
		distNm   float64
		wantBase float64 // 0.9 trajectory × maneuver factor
	}{
		{"stationary", 0.2, 2, 0.0},
		{"slow with distance", 4, 2, 0.09},
		{"moderate with distance", 8, 2, 0.27},
		{"fast with some distance", 18, 2, 0.45},
		{"fast and close", 18, 0.2, 0.72},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := analysis
			a.DistanceToPierNm = tc.distNm
			p := EstimateProbability(VesselReport{SpeedKn: tc.speedKn}, a, cpa)
			assert.InDelta(t, tc.wantBase, p.BaseProbability, 1e-9)
		})
	}
}

func TestEstimateProbabilityConfidence(t *testing.T) {
	t.Parallel()

	t.Run("moderate on marginal clearance", func(t *testing.T) {
		t.Parallel()
		p := EstimateProbability(
			VesselReport{SpeedKn: 12},
			VesselAnalysis{DCRatio: 0.8, DistanceToPierNm: 2, ClearanceFt: 3},
			CPAResult{DistanceNm: 0.2, TimeMinutes: 5, Approaching: true},
		)
		assert.Equal(t, ConfidenceModerate, p.Confidence)
	})

	t.Run("moderate when very close to pier", func(t *testing.T) {
		t.Parallel()
		p := EstimateProbability(
			VesselReport{SpeedKn: 12},
			VesselAnalysis{DCRatio: 0.8, DistanceToPierNm: 0.4, ClearanceFt: 10},
			CPAResult{DistanceNm: 0.2, TimeMinutes: 5, Approaching: true},
		)
		assert.Equal(t, ConfidenceModerate, p.Confidence)
	})

	t.Run("low otherwise", func(t *testing.T) {
		t.Parallel()
		p := EstimateProbability(
			VesselReport{SpeedKn: 12},
			VesselAnalysis{DCRatio: 0.8, DistanceToPierNm: 2, ClearanceFt: 10},
			CPAResult{DistanceNm: 0.2, TimeMinutes: 5, Approaching: true},
		)
		assert.Equal(t, ConfidenceLow, p.Confidence)
	})
}

func TestEstimateProbabilityCategoryThresholds(t *testing.T) {
	t.Parallel()

	// Hold severity at 1.0 and clearance comfortable; walk the trajectory
	// and maneuver factors to land in each category band.
	analysis := VesselAnalysis{DCRatio: 1.2, ClearanceFt: 10}

	cases := []struct {
		name    string
		distNm  float64
		speedKn float64
		cpaNm   float64
		want    ProbabilityCategory
	}{
		{"negligible", 2, 4, 0.4, ProbabilityNegligible}, // 0.2 x 0.1 = 0.02
		{"low", 2, 18, 0.4, ProbabilityLow},              // 0.2 x 0.5 = 0.10
		{"moderate", 2, 18, 0.2, ProbabilityModerate},    // 0.5 x 0.5 = 0.25
		{"high", 0.2, 18, 0.05, ProbabilityHigh},         // 0.9 x 0.8 = 0.72
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := analysis
			a.DistanceToPierNm = tc.distNm
			p := EstimateProbability(
				VesselReport{SpeedKn: tc.speedKn},
				a,
				CPAResult{DistanceNm: tc.cpaNm, TimeMinutes: 5, Approaching: true},
			)
			assert.Equal(t, tc.want, p.Category)
		})
	}
}
