// Package db persists vessel reports and assessments to SQLite.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/allision.report/internal/assess"
)

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the SQLite database at path and ensures the
// baseline schema exists. Use ":memory:" for tests.
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids table-lock errors under concurrent writers.
	sqlDB.SetMaxOpenConns(1)

	_, err = sqlDB.Exec(`
		CREATE TABLE IF NOT EXISTS vessel_reports (
			mmsi              TEXT NOT NULL,
			name              TEXT,
			ship_type         TEXT,
			lat               DOUBLE NOT NULL,
			lon               DOUBLE NOT NULL,
			speed_kn          DOUBLE,
			course_deg        DOUBLE,
			length_m          DOUBLE,
			width_m           DOUBLE,
			received_at       TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_vessel_reports_mmsi
			ON vessel_reports (mmsi, received_at);
		CREATE TABLE IF NOT EXISTS assessments (
			assessment_id     TEXT PRIMARY KEY,
			mmsi              TEXT NOT NULL,
			name              TEXT,
			threat_level      TEXT NOT NULL,
			threat_reason     TEXT,
			status            TEXT NOT NULL,
			pier_id           TEXT,
			dc_ratio          DOUBLE,
			cpa_nm            DOUBLE,
			cpa_minutes       BIGINT,
			approaching       BOOLEAN,
			probability       DOUBLE,
			category          TEXT,
			detail            TEXT,
			created_at        TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_created
			ON assessments (created_at);
		CREATE INDEX IF NOT EXISTS idx_assessments_mmsi
			ON assessments (mmsi, created_at);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{sqlDB}, nil
}

// RecordReport stores a raw vessel position report.
func (db *DB) RecordReport(report assess.VesselReport, receivedAt time.Time) error {
	_, err := db.Exec(`
		INSERT INTO vessel_reports
			(mmsi, name, ship_type, lat, lon, speed_kn, course_deg, length_m, width_m, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.MMSI, report.Name, report.ShipType,
		report.Position.Lat, report.Position.Lon,
		report.SpeedKn, report.CourseDeg,
		report.LengthM, report.WidthM,
		receivedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record vessel report: %w", err)
	}
	return nil
}

// RecordAssessment stores a completed assessment. The full assessment is
// kept as JSON in the detail column so the API can replay it without
// re-running the engine; the scalar columns exist for querying.
func (db *DB) RecordAssessment(a *assess.Assessment, createdAt time.Time) (string, error) {
	detail, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to marshal assessment: %w", err)
	}

	id := uuid.New().String()
	_, err = db.Exec(`
		INSERT INTO assessments
			(assessment_id, mmsi, name, threat_level, threat_reason, status,
			 pier_id, dc_ratio, cpa_nm, cpa_minutes, approaching,
			 probability, category, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.MMSI, a.Name,
		string(a.Threat.Level), a.Threat.Reason,
		string(a.Analysis.Status), a.Analysis.PierID,
		a.Analysis.DCRatio,
		a.Threat.CPA.DistanceNm, a.Threat.CPA.TimeMinutes, a.Threat.Approaching,
		a.Probability.Probability, string(a.Probability.Category),
		string(detail), createdAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record assessment: %w", err)
	}
	return id, nil
}

// StoredAssessment is an assessment row as returned by queries.
type StoredAssessment struct {
	AssessmentID string            `json:"assessment_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Assessment   assess.Assessment `json:"assessment"`
}

// LatestAssessments returns the most recent assessment per vessel,
// newest first, up to limit rows. limit <= 0 means no limit.
func (db *DB) LatestAssessments(limit int) ([]StoredAssessment, error) {
	query := `
		SELECT assessment_id, detail, created_at
		FROM assessments
		WHERE created_at = (
			SELECT MAX(a2.created_at) FROM assessments a2 WHERE a2.mmsi = assessments.mmsi
		)
		GROUP BY mmsi
		ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var out []StoredAssessment
	for rows.Next() {
		var (
			sa     StoredAssessment
			detail string
		)
		if err := rows.Scan(&sa.AssessmentID, &detail, &sa.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		if err := json.Unmarshal([]byte(detail), &sa.Assessment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment detail: %w", err)
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}

// ThreatCount is one row of a threat rollup.
type ThreatCount struct {
	Level    string  `json:"level"`
	Count    int64   `json:"count"`
	Vessels  int64   `json:"vessels"`
	MaxDC    float64 `json:"max_dc_ratio"`
	MaxProb  float64 `json:"max_probability"`
	MinCPANm float64 `json:"min_cpa_nm"`
}

// ThreatRollup aggregates assessments recorded in the past N days by
// threat level.
func (db *DB) ThreatRollup(days int) ([]ThreatCount, error) {
	if days <= 0 {
		days = 1
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := db.Query(`
		SELECT threat_level,
		       COUNT(*),
		       COUNT(DISTINCT mmsi),
		       COALESCE(MAX(dc_ratio), 0),
		       COALESCE(MAX(probability), 0),
		       COALESCE(MIN(cpa_nm), 0)
		FROM assessments
		WHERE created_at >= ?
		GROUP BY threat_level
		ORDER BY COUNT(*) DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query threat rollup: %w", err)
	}
	defer rows.Close()

	var out []ThreatCount
	for rows.Next() {
		var tc ThreatCount
		if err := rows.Scan(&tc.Level, &tc.Count, &tc.Vessels, &tc.MaxDC, &tc.MaxProb, &tc.MinCPANm); err != nil {
			return nil, fmt.Errorf("failed to scan rollup row: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// ReportCount returns the number of stored vessel reports.
func (db *DB) ReportCount() (int64, error) {
	var n int64
	err := db.QueryRow(`SELECT COUNT(*) FROM vessel_reports`).Scan(&n)
	return n, err
}
