package assess

// Classification thresholds. The decision table below is evaluated
// top-to-bottom and the first matching rule wins; reordering the rules
// changes semantics.
const (
	negligibleDCRatio    = 0.5
	elevatedDCRatio      = 0.75
	criticalDCRatio      = 1.0
	farFromBridgeNm      = 10.0
	headedAwayDistanceNm = 1.0
	alarmDistanceNm      = 2.0
	elevatedDistanceNm   = 5.0
	excessiveSpeedKn     = 15.0
)

// ClassifyThreat maps a vessel's structural analysis, CPA solution, and
// approach state to a discrete threat level. Memoryless: nothing is
// retained between evaluations.
func ClassifyThreat(analysis VesselAnalysis, cpa CPAResult, approaching bool, speedKn float64) ThreatAssessment {
	assessment := ThreatAssessment{CPA: cpa, Approaching: approaching}

	switch {
	case analysis.WillGround:
		assessment.Level = ThreatNegligible
		assessment.Reason = "Vessel will ground before pier"

	case !approaching && analysis.DistanceToPierNm > headedAwayDistanceNm:
		assessment.Level = ThreatNegligible
		assessment.Reason = "Vessel headed away - Routine tracking"

	case analysis.DCRatio < negligibleDCRatio:
		assessment.Level = ThreatNegligible
		assessment.Reason = "Vessel too small - Routine tracking"

	case analysis.DistanceToPierNm > farFromBridgeNm:
		assessment.Level = ThreatNegligible
		assessment.Reason = "Vessel far from bridge - Routine tracking"

	case speedKn < stationarySpeedKn:
		assessment.Level = ThreatNegligible
		assessment.Reason = "Vessel stationary - Routine tracking"

	case analysis.DCRatio >= criticalDCRatio && speedKn > excessiveSpeedKn &&
		approaching && analysis.DistanceToPierNm < alarmDistanceNm:
		assessment.Level = ThreatAlarm
		assessment.Reason = "Excessive speed approaching bridge - Close bridge immediately"

	case analysis.DCRatio >= elevatedDCRatio && approaching &&
		analysis.DistanceToPierNm < elevatedDistanceNm:
		assessment.Level = ThreatElevatedMonitoring
		assessment.Reason = "Large vessel approaching - Routine transit expected"

	case analysis.DCRatio >= negligibleDCRatio && analysis.DistanceToPierNm < farFromBridgeNm:
		assessment.Level = ThreatMonitor
		assessment.Reason = "Large vessel in the area - Routine tracking"

	default:
		assessment.Level = ThreatNegligible
		assessment.Reason = "Vessel too small, deep drafted, far, or headed away - Routine tracking"
	}

	return assessment
}
