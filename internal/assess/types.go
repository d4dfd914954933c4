// Package assess implements the vessel risk-assessment engine: structural
// impact estimation, trajectory projection with closest-point-of-approach,
// threat classification, and allision probability scoring. The engine is a
// pure computation over a VesselReport and an immutable site.Bridge; it
// performs no I/O and retains no state between calls.
package assess

import "github.com/banshee-data/allision.report/internal/geo"

// VesselReport is one ingestion cycle's worth of AIS data for a vessel.
// Length, width, and ship type are optional; zero/empty values degrade to
// the deadweight heuristics. The engine never retains a report.
type VesselReport struct {
	MMSI      string    `json:"mmsi"`
	Name      string    `json:"name"`
	ShipType  string    `json:"ship_type"`
	Position  geo.Point `json:"position"`
	SpeedKn   float64   `json:"sog"` // speed over ground, knots
	CourseDeg float64   `json:"cog"` // course over ground, degrees [0,360)
	LengthM   float64   `json:"length_m"`
	WidthM    float64   `json:"width_m"`
}

// StatusLabel is the coarse D/C-based status of a vessel. Informational
// only; the authoritative threat decision is the ThreatLevel.
type StatusLabel string

const (
	StatusCritical StatusLabel = "CRITICAL" // impact exceeds lateral pier capacity
	StatusWarning  StatusLabel = "WARNING"  // impact approaching lateral capacity
	StatusWatch    StatusLabel = "WATCH"    // significant lateral impact force
	StatusNormal   StatusLabel = "NORMAL"   // impact within safe limits
	StatusGrounded StatusLabel = "GROUNDED" // vessel grounds before reaching a pier
)

// VesselAnalysis is the structural-impact view of a single report: nearest
// pier, estimated mass and draft, under-keel clearance, and the resulting
// demand/capacity ratio. Immutable once produced.
type VesselAnalysis struct {
	PierID             string      `json:"pier_id"`
	PierName           string      `json:"pier_name"`
	DistanceToPierNm   float64     `json:"distance_to_pier_nm"`
	DistanceToBridgeNm float64     `json:"distance_to_bridge_nm"`
	DeadweightTons     float64     `json:"dwt_tons"`
	DraftFt            float64     `json:"draft_ft"`
	WaterDepthFt       float64     `json:"water_depth_ft"`
	ClearanceFt        float64     `json:"ukc_ft"` // water depth minus draft; negative = deficit
	WillGround         bool        `json:"will_ground"`
	ImpactForceKips    float64     `json:"impact_force_kips"`
	PierCapacityKips   float64     `json:"pier_capacity_kips"`
	DCRatio            float64     `json:"dc_ratio"`
	Status             StatusLabel `json:"status"`
	Description        string      `json:"description"`
}

// TrajectoryPoint is a projected future position on a straight constant-speed
// track, with the distance to the bridge centroid at that time.
type TrajectoryPoint struct {
	TimeMinutes        int       `json:"time_minutes"`
	Position           geo.Point `json:"position"`
	DistanceToBridgeNm float64   `json:"distance_to_bridge_nm"`
}

// CPAResult is the closest point of approach to a fixed target over the
// scan horizon. Approaching is true only when the minimum is strictly
// closer than the current position and strictly in the future.
type CPAResult struct {
	DistanceNm  float64 `json:"cpa_distance_nm"`
	TimeMinutes int     `json:"cpa_time_minutes"`
	Approaching bool    `json:"approaching"`
}

// ThreatLevel is the discrete outcome of the threat decision table.
type ThreatLevel string

const (
	ThreatAlarm              ThreatLevel = "ALARM"
	ThreatElevatedMonitoring ThreatLevel = "ELEVATED_MONITORING"
	ThreatMonitor            ThreatLevel = "MONITOR"
	ThreatNegligible         ThreatLevel = "NEGLIGIBLE_THREAT"
)

// ThreatAssessment is the classified threat for one report, with the CPA
// solution the classification was based on.
type ThreatAssessment struct {
	Level       ThreatLevel `json:"level"`
	Reason      string      `json:"reason"`
	CPA         CPAResult   `json:"cpa"`
	Approaching bool        `json:"approaching"` // 5-minute look-ahead toward the nearest pier
}

// ProbabilityCategory buckets the weighted allision probability.
type ProbabilityCategory string

const (
	ProbabilityNegligible ProbabilityCategory = "NEGLIGIBLE"
	ProbabilityLow        ProbabilityCategory = "LOW"
	ProbabilityModerate   ProbabilityCategory = "MODERATE"
	ProbabilityHigh       ProbabilityCategory = "HIGH"
)

// Confidence labels how certain the probability model is about its output.
type Confidence string

const (
	ConfidenceHigh     Confidence = "HIGH"
	ConfidenceModerate Confidence = "MODERATE"
	ConfidenceLow      Confidence = "LOW"
)

// ProbabilityFactors carries the human-readable explanation for each of the
// four contributing factors.
type ProbabilityFactors struct {
	Trajectory      string `json:"trajectory"`
	Grounding       string `json:"grounding"`
	Maneuverability string `json:"maneuverability"`
	Severity        string `json:"severity"`
}

// AllisionProbability is the combined probability estimate. Probability is
// the severity-weighted score in [0,1]; BaseProbability and SeverityFactor
// expose the unweighted components used to derive it.
type AllisionProbability struct {
	Probability           float64             `json:"probability"`
	Percent               float64             `json:"probability_percent"`
	Category              ProbabilityCategory `json:"probability_category"`
	Confidence            Confidence          `json:"confidence"`
	ConfidenceDescription string              `json:"confidence_description"`
	Factors               ProbabilityFactors  `json:"factors"`
	BaseProbability       float64             `json:"base_probability"`
	SeverityFactor        float64             `json:"severity_factor"`
}

// Assessment is the full derived tuple for one vessel report.
type Assessment struct {
	MMSI        string              `json:"mmsi"`
	Name        string              `json:"name"`
	SpeedKn     float64             `json:"sog"`
	CourseDeg   float64             `json:"cog"`
	Position    geo.Point           `json:"position"`
	Analysis    VesselAnalysis      `json:"analysis"`
	Trajectory  []TrajectoryPoint   `json:"trajectory"`
	Threat      ThreatAssessment    `json:"threat"`
	Probability AllisionProbability `json:"probability"`
}
