// Package track maintains the in-memory picture of vessels currently
// being observed: the latest position report, static voyage data, and
// the most recent assessment for each MMSI.
package track

import (
	"sort"
	"sync"
	"time"

	"github.com/banshee-data/allision.report/internal/assess"
)

// Static holds the slowly-changing vessel attributes reported separately
// from position updates. Fields are merged into subsequent reports.
type Static struct {
	Name     string  `json:"name"`
	ShipType string  `json:"ship_type"`
	LengthM  float64 `json:"length_m"`
	WidthM   float64 `json:"width_m"`
}

// Entry is the tracked state for a single vessel.
type Entry struct {
	MMSI       string              `json:"mmsi"`
	Report     assess.VesselReport `json:"report"`
	Static     *Static             `json:"static,omitempty"`
	Assessment *assess.Assessment  `json:"assessment,omitempty"`
	LastSeen   time.Time           `json:"last_seen"`
}

// Harbor is a concurrency-safe registry of tracked vessels keyed by MMSI.
type Harbor struct {
	mu      sync.RWMutex
	vessels map[string]*Entry
}

// NewHarbor returns an empty Harbor.
func NewHarbor() *Harbor {
	return &Harbor{vessels: map[string]*Entry{}}
}

// UpsertReport records the latest position report for a vessel and returns
// the report with any known static data merged in. The merged report is
// what the assessment engine should run on, since position reports carry
// no dimensions and often no name.
func (h *Harbor) UpsertReport(report assess.VesselReport, seen time.Time) assess.VesselReport {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := h.entry(report.MMSI)
	if st := e.Static; st != nil {
		if report.Name == "" {
			report.Name = st.Name
		}
		if report.ShipType == "" {
			report.ShipType = st.ShipType
		}
		if report.LengthM == 0 {
			report.LengthM = st.LengthM
		}
		if report.WidthM == 0 {
			report.WidthM = st.WidthM
		}
	}
	e.Report = report
	e.LastSeen = seen
	return report
}

// UpsertStatic records static voyage data for a vessel.
func (h *Harbor) UpsertStatic(mmsi string, st Static, seen time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := h.entry(mmsi)
	e.Static = &st
	e.LastSeen = seen
}

// SetAssessment attaches the latest assessment to a tracked vessel. The
// vessel must already have reported; assessments for unknown MMSIs are
// dropped.
func (h *Harbor) SetAssessment(mmsi string, a *assess.Assessment) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e, ok := h.vessels[mmsi]; ok {
		e.Assessment = a
	}
}

// Get returns a copy of the tracked entry for an MMSI.
func (h *Harbor) Get(mmsi string) (Entry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.vessels[mmsi]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Snapshot returns copies of all tracked entries, sorted by MMSI so
// output is stable.
func (h *Harbor) Snapshot() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry, 0, len(h.vessels))
	for _, e := range h.vessels {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MMSI < out[j].MMSI })
	return out
}

// Assessments returns the latest assessment for every vessel that has one.
func (h *Harbor) Assessments() []assess.Assessment {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]assess.Assessment, 0, len(h.vessels))
	for _, e := range h.vessels {
		if e.Assessment != nil {
			out = append(out, *e.Assessment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MMSI < out[j].MMSI })
	return out
}

// Len returns the number of tracked vessels.
func (h *Harbor) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.vessels)
}

// Prune removes vessels not heard from since the cutoff and returns how
// many were removed.
func (h *Harbor) Prune(cutoff time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for mmsi, e := range h.vessels {
		if e.LastSeen.Before(cutoff) {
			delete(h.vessels, mmsi)
			removed++
		}
	}
	return removed
}

// entry returns the tracked entry for an MMSI, creating it if needed.
// Caller must hold the write lock.
func (h *Harbor) entry(mmsi string) *Entry {
	e, ok := h.vessels[mmsi]
	if !ok {
		e = &Entry{MMSI: mmsi}
		h.vessels[mmsi] = e
	}
	return e
}
