package assess

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FleetSummary aggregates a batch of assessments for dashboard display:
// headline counts per threat level, the worst D/C and probability seen,
// and speed percentiles across the fleet.
type FleetSummary struct {
	Vessels        int                 `json:"vessels"`
	ByThreat       map[ThreatLevel]int `json:"by_threat"`
	Approaching    int                 `json:"approaching"`
	Grounding      int                 `json:"grounding"`
	MaxDCRatio     float64             `json:"max_dc_ratio"`
	MaxProbability float64             `json:"max_probability"`
	P50SpeedKn     float64             `json:"p50_speed_kn"`
	P85SpeedKn     float64             `json:"p85_speed_kn"`
	P98SpeedKn     float64             `json:"p98_speed_kn"`
}

// Summarize computes a FleetSummary over one cycle's assessments.
// An empty batch yields zero values throughout.
func Summarize(assessments []Assessment) FleetSummary {
	summary := FleetSummary{
		Vessels:  len(assessments),
		ByThreat: make(map[ThreatLevel]int),
	}
	if len(assessments) == 0 {
		return summary
	}

	speeds := make([]float64, 0, len(assessments))
	for _, a := range assessments {
		summary.ByThreat[a.Threat.Level]++
		if a.Threat.Approaching {
			summary.Approaching++
		}
		if a.Analysis.WillGround {
			summary.Grounding++
		}
		if a.Analysis.DCRatio > summary.MaxDCRatio {
			summary.MaxDCRatio = a.Analysis.DCRatio
		}
		if a.Probability.Probability > summary.MaxProbability {
			summary.MaxProbability = a.Probability.Probability
		}
		speeds = append(speeds, a.SpeedKn)
	}

	// stat.Quantile requires sorted input.
	sort.Float64s(speeds)
	summary.P50SpeedKn = stat.Quantile(0.50, stat.Empirical, speeds, nil)
	summary.P85SpeedKn = stat.Quantile(0.85, stat.Empirical, speeds, nil)
	summary.P98SpeedKn = stat.Quantile(0.98, stat.Empirical, speeds, nil)

	return summary
}
