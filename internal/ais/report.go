package ais

import (
	"fmt"
	"strconv"

	"github.com/banshee-data/allision.report/internal/assess"
	"github.com/banshee-data/allision.report/internal/geo"
)

// maxValidSogKn is the AIS encoding ceiling for speed over ground; 102.3
// is the "not available" sentinel.
const maxValidSogKn = 102.2

// ReportFromPosition builds an engine-ready vessel report from a position
// report and its metadata. Static fields (ship type, dimensions) are left
// zero; callers merge them from the vessel registry when known. The report
// is validated before it is returned: the engine's numeric branches assume
// in-range inputs, so malformed records are rejected here at the boundary.
func ReportFromPosition(meta Metadata, pos PositionReport) (assess.VesselReport, error) {
	report := assess.VesselReport{
		MMSI:      strconv.Itoa(meta.MMSI),
		Name:      meta.ShipName,
		Position:  geo.Point{Lat: pos.Latitude, Lon: pos.Longitude},
		SpeedKn:   pos.Sog,
		CourseDeg: pos.Cog,
	}
	if err := ValidateReport(report); err != nil {
		return assess.VesselReport{}, err
	}
	return report, nil
}

// ValidateReport rejects records the engine's documented domain excludes:
// out-of-range positions, negative or sentinel speeds, and courses outside
// [0,360).
func ValidateReport(r assess.VesselReport) error {
	if r.MMSI == "" || r.MMSI == "0" {
		return fmt.Errorf("report has no vessel identifier")
	}
	if r.Position.Lat < -90 || r.Position.Lat > 90 {
		return fmt.Errorf("latitude out of range: %f", r.Position.Lat)
	}
	if r.Position.Lon < -180 || r.Position.Lon > 180 {
		return fmt.Errorf("longitude out of range: %f", r.Position.Lon)
	}
	if r.SpeedKn < 0 {
		return fmt.Errorf("negative speed over ground: %f", r.SpeedKn)
	}
	if r.SpeedKn > maxValidSogKn {
		return fmt.Errorf("speed over ground unavailable or invalid: %f", r.SpeedKn)
	}
	if r.CourseDeg < 0 || r.CourseDeg >= 360 {
		return fmt.Errorf("course over ground out of range: %f", r.CourseDeg)
	}
	return nil
}
