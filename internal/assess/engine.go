package assess

import "github.com/banshee-data/allision.report/internal/site"

// Engine evaluates vessel reports against a fixed bridge site. The bridge
// is read-only after construction, so a single Engine is safe for
// concurrent use across vessels with no coordination.
type Engine struct {
	bridge *site.Bridge
}

// NewEngine returns an Engine bound to the given bridge site.
func NewEngine(bridge *site.Bridge) *Engine {
	return &Engine{bridge: bridge}
}

// Bridge returns the site the engine assesses against.
func (e *Engine) Bridge() *site.Bridge {
	return e.bridge
}

// Assess runs the full pipeline for one vessel report: structural analysis
// against the nearest pier, trajectory projection, CPA to that pier, threat
// classification, and allision probability. Either the whole tuple is
// produced or nothing; no partial state survives the call.
func (e *Engine) Assess(report VesselReport) Assessment {
	analysis := Analyze(e.bridge, report)

	pier, _ := e.bridge.PierByID(analysis.PierID)
	cpa := ClosestApproach(report, pier.Position)
	approaching := IsApproaching(report, pier.Position)

	threat := ClassifyThreat(analysis, cpa, approaching, report.SpeedKn)
	probability := EstimateProbability(report, analysis, cpa)

	return Assessment{
		MMSI:        report.MMSI,
		Name:        report.Name,
		SpeedKn:     report.SpeedKn,
		CourseDeg:   report.CourseDeg,
		Position:    report.Position,
		Analysis:    analysis,
		Trajectory:  ProjectTrajectory(e.bridge, report, DefaultHorizonsMinutes),
		Threat:      threat,
		Probability: probability,
	}
}
