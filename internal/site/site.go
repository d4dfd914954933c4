// Package site holds the static description of the protected bridge: its
// centroid and the piers a transiting vessel could strike. A Bridge is
// constructed once at startup from a JSON config file and never mutated, so
// it is safe to share across concurrent assessments.
package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/allision.report/internal/geo"
)

// DefaultSitePath is the path to the canonical site configuration file.
const DefaultSitePath = "config/site.defaults.json"

// Pier is a single bridge pier. LateralCapacityKips is the rated lateral
// load the pier can absorb; WaterDepthFt is the charted channel depth at
// the pier.
type Pier struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Position            geo.Point `json:"position"`
	LateralCapacityKips float64   `json:"lateral_capacity_kips"`
	WaterDepthFt        float64   `json:"water_depth_ft"`
}

// Bridge is the protected structure: a centroid for display-oriented
// distances plus the pier list used for impact analysis. Pier order is
// significant: nearest-pier ties resolve to the earliest-listed pier.
type Bridge struct {
	Name     string    `json:"name"`
	Position geo.Point `json:"position"`
	Piers    []Pier    `json:"piers"`
}

// Load reads a Bridge from a JSON file. The file must have a .json
// extension and be under the max file size.
func Load(path string) (*Bridge, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("site file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat site file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("site file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read site file: %w", err)
	}

	var bridge Bridge
	if err := json.Unmarshal(data, &bridge); err != nil {
		return nil, fmt.Errorf("failed to parse site JSON: %w", err)
	}

	if err := bridge.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site configuration: %w", err)
	}

	return &bridge, nil
}

// MustLoadDefault loads the canonical site configuration from
// DefaultSitePath, searching the current directory and common parent
// directories. Panics if the file cannot be found — intended for test setup.
func MustLoadDefault() *Bridge {
	candidates := []string{
		DefaultSitePath,
		"../../" + DefaultSitePath, // from internal/<pkg>/
		"../../../" + DefaultSitePath,
		"../../../../" + DefaultSitePath,
	}
	for _, path := range candidates {
		if bridge, err := Load(path); err == nil {
			return bridge
		}
	}
	panic("cannot find " + DefaultSitePath + " - run tests from repository root")
}

// Validate checks that the site describes a usable bridge.
func (b *Bridge) Validate() error {
	if len(b.Piers) == 0 {
		return fmt.Errorf("site must define at least one pier")
	}
	if err := validatePoint(b.Position); err != nil {
		return fmt.Errorf("bridge position: %w", err)
	}
	seen := make(map[string]bool, len(b.Piers))
	for i, pier := range b.Piers {
		if pier.ID == "" {
			return fmt.Errorf("pier %d has no id", i)
		}
		if seen[pier.ID] {
			return fmt.Errorf("duplicate pier id %q", pier.ID)
		}
		seen[pier.ID] = true
		if err := validatePoint(pier.Position); err != nil {
			return fmt.Errorf("pier %q position: %w", pier.ID, err)
		}
		if pier.LateralCapacityKips <= 0 {
			return fmt.Errorf("pier %q lateral_capacity_kips must be positive, got %f", pier.ID, pier.LateralCapacityKips)
		}
		if pier.WaterDepthFt <= 0 {
			return fmt.Errorf("pier %q water_depth_ft must be positive, got %f", pier.ID, pier.WaterDepthFt)
		}
	}
	return nil
}

func validatePoint(p geo.Point) error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude out of range: %f", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude out of range: %f", p.Lon)
	}
	return nil
}

// NearestPier returns the pier closest to p and the distance to it in
// nautical miles. Comparison is strict less-than, so on an exact tie the
// earliest-listed pier wins.
func (b *Bridge) NearestPier(p geo.Point) (Pier, float64) {
	var nearest Pier
	minDistance := -1.0

	for _, pier := range b.Piers {
		d := geo.Distance(p, pier.Position)
		if minDistance < 0 || d < minDistance {
			minDistance = d
			nearest = pier
		}
	}

	return nearest, minDistance
}

// PierByID returns the pier with the given id, or false if no pier matches.
func (b *Bridge) PierByID(id string) (Pier, bool) {
	for _, pier := range b.Piers {
		if pier.ID == id {
			return pier, true
		}
	}
	return Pier{}, false
}
