package assess

import "fmt"

// EstimateProbability combines four independent [0,1] factors — trajectory
// alignment, grounding likelihood, maneuvering margin, and impact severity —
// into a single allision probability:
//
//	base     = trajectory × (1 − groundingPrevents) × maneuverability
//	weighted = base × severity
//
// Each factor carries an explanation string for downstream display.
func EstimateProbability(report VesselReport, analysis VesselAnalysis, cpa CPAResult) AllisionProbability {
	var factors ProbabilityFactors

	// Factor 1: how directly is the vessel heading toward the pier?
	var trajectoryFactor float64
	switch {
	case !cpa.Approaching:
		trajectoryFactor = 0.0
		factors.Trajectory = "Vessel heading away from bridge"
	case cpa.DistanceNm > 0.5:
		trajectoryFactor = 0.0
		factors.Trajectory = fmt.Sprintf("CPA %.2f nm - safe passage", cpa.DistanceNm)
	case cpa.DistanceNm > 0.3:
		trajectoryFactor = 0.2
		factors.Trajectory = fmt.Sprintf("CPA %.2f nm - marginal", cpa.DistanceNm)
	case cpa.DistanceNm > 0.1:
		trajectoryFactor = 0.5
		factors.Trajectory = fmt.Sprintf("CPA %.2f nm - close approach", cpa.DistanceNm)
	default:
		trajectoryFactor = 0.9
		factors.Trajectory = fmt.Sprintf("CPA %.2f nm - collision course", cpa.DistanceNm)
	}

	// Factor 2: will the vessel ground before reaching the pier?
	ukc := analysis.ClearanceFt
	var groundingPrevents float64
	switch {
	case analysis.WillGround:
		groundingPrevents = 0.95
		factors.Grounding = fmt.Sprintf("UKC %.1f ft - will likely ground", ukc)
	case ukc < -5:
		groundingPrevents = 0.7
		factors.Grounding = fmt.Sprintf("UKC %.1f ft - probable grounding", ukc)
	case ukc < 0:
		groundingPrevents = 0.4
		factors.Grounding = fmt.Sprintf("UKC %.1f ft - possible grounding", ukc)
	case ukc < 5:
		groundingPrevents = 0.1
		factors.Grounding = fmt.Sprintf("UKC %.1f ft - marginal clearance", ukc)
	default:
		groundingPrevents = 0.0
		factors.Grounding = fmt.Sprintf("UKC %.1f ft - adequate depth", ukc)
	}

	// Factor 3: can the vessel still maneuver clear?
	speed := report.SpeedKn
	distanceToPier := analysis.DistanceToPierNm
	var maneuverFactor float64
	switch {
	case speed < stationarySpeedKn:
		maneuverFactor = 0.0
		factors.Maneuverability = "Stationary - minimal drift risk"
	case speed < 5 && distanceToPier > 1.0:
		maneuverFactor = 0.1
		factors.Maneuverability = "Low speed - can maneuver"
	case speed < 10 && distanceToPier > 0.5:
		maneuverFactor = 0.3
		factors.Maneuverability = "Moderate speed - should maneuver"
	case distanceToPier > 0.3:
		maneuverFactor = 0.5
		factors.Maneuverability = fmt.Sprintf("%.1f kts - limited time to maneuver", speed)
	default:
		maneuverFactor = 0.8
		factors.Maneuverability = fmt.Sprintf("%.1f kts at %.2f nm - minimal time", speed, distanceToPier)
	}

	// Factor 4: how severe would an impact be?
	var severityFactor float64
	switch {
	case analysis.DCRatio < 0.5:
		severityFactor = 0.3
		factors.Severity = fmt.Sprintf("D/C=%.2f - minor damage if impact", analysis.DCRatio)
	case analysis.DCRatio < 0.75:
		severityFactor = 0.5
		factors.Severity = fmt.Sprintf("D/C=%.2f - moderate damage if impact", analysis.DCRatio)
	case analysis.DCRatio < 1.0:
		severityFactor = 0.7
		factors.Severity = fmt.Sprintf("D/C=%.2f - significant damage if impact", analysis.DCRatio)
	default:
		severityFactor = 1.0
		factors.Severity = fmt.Sprintf("D/C=%.2f - pier failure if impact", analysis.DCRatio)
	}

	base := trajectoryFactor * (1 - groundingPrevents) * maneuverFactor
	weighted := base * severityFactor

	var confidence Confidence
	var confidenceDesc string
	switch {
	case trajectoryFactor == 0 || groundingPrevents > 0.9:
		confidence = ConfidenceHigh
		confidenceDesc = "High confidence in assessment"
	case ukc < 5 || distanceToPier < 0.5:
		confidence = ConfidenceModerate
		confidenceDesc = "Moderate confidence - uncertainties present"
	default:
		confidence = ConfidenceLow
		confidenceDesc = "Low confidence - multiple uncertainties"
	}

	var category ProbabilityCategory
	switch {
	case weighted < 0.05:
		category = ProbabilityNegligible
	case weighted < 0.15:
		category = ProbabilityLow
	case weighted < 0.35:
		category = ProbabilityModerate
	default:
		category = ProbabilityHigh
	}

	return AllisionProbability{
		Probability:           weighted,
		Percent:               weighted * 100,
		Category:              category,
		Confidence:            confidence,
		ConfidenceDescription: confidenceDesc,
		Factors:               factors,
		BaseProbability:       base,
		SeverityFactor:        severityFactor,
	}
}
