// Package config loads the application configuration from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical application defaults
// file. This is the single source of truth for default settings.
const DefaultConfigPath = "config/app.defaults.json"

// AppConfig represents the root application configuration. Fields are
// pointers so partial config files only override what they set; the
// Get* methods supply defaults for everything omitted.
type AppConfig struct {
	// AIS stream params
	AISURL             *string       `json:"ais_url,omitempty"`
	AISAPIKey          *string       `json:"ais_api_key,omitempty"`
	BoundingBoxes      [][][]float64 `json:"bounding_boxes,omitempty"`
	FilterMessageTypes []string      `json:"filter_message_types,omitempty"`

	// Tracking params. Expiry and period are duration strings like "30m".
	AssessWorkers  *int     `json:"assess_workers,omitempty"`
	VesselExpiry   *string  `json:"vessel_expiry,omitempty"`
	JanitorsPeriod *string  `json:"janitor_period,omitempty"`
	MinAssessSpeed *float64 `json:"min_assess_speed_kn,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrFloat64(v float64) *float64 { return &v }

// EmptyAppConfig returns an AppConfig with all fields set to nil.
func EmptyAppConfig() *AppConfig {
	return &AppConfig{}
}

// LoadAppConfig loads an AppConfig from a JSON file. The file must have
// a .json extension and be under the max file size. Fields omitted from
// the JSON retain their defaults, so partial configs are safe.
func LoadAppConfig(path string) (*AppConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAppConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical application defaults from
// DefaultConfigPath, searching the current directory and common parent
// directories. Panics if the file cannot be loaded, intended for test
// setup.
func MustLoadDefaultConfig() *AppConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadAppConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *AppConfig) Validate() error {
	if c.AssessWorkers != nil && *c.AssessWorkers < 1 {
		return fmt.Errorf("assess_workers must be at least 1, got %d", *c.AssessWorkers)
	}

	if c.VesselExpiry != nil && *c.VesselExpiry != "" {
		if _, err := time.ParseDuration(*c.VesselExpiry); err != nil {
			return fmt.Errorf("invalid vessel_expiry '%s': %w", *c.VesselExpiry, err)
		}
	}

	if c.JanitorsPeriod != nil && *c.JanitorsPeriod != "" {
		if _, err := time.ParseDuration(*c.JanitorsPeriod); err != nil {
			return fmt.Errorf("invalid janitor_period '%s': %w", *c.JanitorsPeriod, err)
		}
	}

	if c.MinAssessSpeed != nil && *c.MinAssessSpeed < 0 {
		return fmt.Errorf("min_assess_speed_kn must be non-negative, got %f", *c.MinAssessSpeed)
	}

	for i, box := range c.BoundingBoxes {
		if len(box) != 2 {
			return fmt.Errorf("bounding box %d must have exactly 2 corners, got %d", i, len(box))
		}
		for j, corner := range box {
			if len(corner) != 2 {
				return fmt.Errorf("bounding box %d corner %d must be [lat, lon], got %d values", i, j, len(corner))
			}
		}
	}

	return nil
}

// GetAISURL returns the AIS stream endpoint or the default.
func (c *AppConfig) GetAISURL() string {
	if c.AISURL == nil || *c.AISURL == "" {
		return "wss://stream.aisstream.io/v0/stream"
	}
	return *c.AISURL
}

// GetAISAPIKey returns the AIS API key, or empty if not configured.
func (c *AppConfig) GetAISAPIKey() string {
	if c.AISAPIKey == nil {
		return ""
	}
	return *c.AISAPIKey
}

// GetAssessWorkers returns the number of assessment workers or the default.
func (c *AppConfig) GetAssessWorkers() int {
	if c.AssessWorkers == nil {
		return 4 // default
	}
	return *c.AssessWorkers
}

// GetVesselExpiry parses and returns the vessel expiry horizon.
func (c *AppConfig) GetVesselExpiry() time.Duration {
	if c.VesselExpiry == nil || *c.VesselExpiry == "" {
		return 30 * time.Minute // default
	}
	d, err := time.ParseDuration(*c.VesselExpiry)
	if err != nil {
		return 30 * time.Minute // default on parse error
	}
	return d
}

// GetJanitorPeriod parses and returns the janitor sweep period.
func (c *AppConfig) GetJanitorPeriod() time.Duration {
	if c.JanitorsPeriod == nil || *c.JanitorsPeriod == "" {
		return 5 * time.Minute // default
	}
	d, err := time.ParseDuration(*c.JanitorsPeriod)
	if err != nil {
		return 5 * time.Minute // default on parse error
	}
	return d
}

// GetMinAssessSpeed returns the minimum speed in knots below which
// vessels are tracked but not run through the assessment engine.
func (c *AppConfig) GetMinAssessSpeed() float64 {
	if c.MinAssessSpeed == nil {
		return 0 // assess everything by default
	}
	return *c.MinAssessSpeed
}

// GetBoundingBoxes returns the AIS subscription bounding boxes or a
// default box around Boston's inner harbor.
func (c *AppConfig) GetBoundingBoxes() [][][]float64 {
	if len(c.BoundingBoxes) == 0 {
		return [][][]float64{{{42.30, -71.15}, {42.45, -70.90}}}
	}
	return c.BoundingBoxes
}

// GetFilterMessageTypes returns the AIS message type filter or the
// default of position reports plus static data.
func (c *AppConfig) GetFilterMessageTypes() []string {
	if len(c.FilterMessageTypes) == 0 {
		return []string{"PositionReport", "ShipStaticData"}
	}
	return c.FilterMessageTypes
}
