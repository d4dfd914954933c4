package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/allision.report/internal/assess"
	"github.com/banshee-data/allision.report/internal/db"
	"github.com/banshee-data/allision.report/internal/httputil"
	"github.com/banshee-data/allision.report/internal/site"
	"github.com/banshee-data/allision.report/internal/track"
	"github.com/banshee-data/allision.report/internal/units"
	"github.com/banshee-data/allision.report/internal/version"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	harbor *track.Harbor
	db     *db.DB
	bridge *site.Bridge
	units  string
}

func NewServer(harbor *track.Harbor, database *db.DB, bridge *site.Bridge, speedUnits string) *Server {
	return &Server{
		harbor: harbor,
		db:     database,
		bridge: bridge,
		units:  speedUnits,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vessels", s.listVessels)
	mux.HandleFunc("/api/assessments", s.listAssessments)
	mux.HandleFunc("/api/fleet", s.showFleetSummary)
	mux.HandleFunc("/api/threats", s.showThreatRollup)
	mux.HandleFunc("/api/site", s.showSite)
	mux.HandleFunc("/api/config", s.showConfig)
	return mux
}

// convertEntrySpeed applies unit conversion to the speed of a tracked
// vessel. Speeds are stored in knots.
func (s *Server) convertEntrySpeed(e track.Entry) track.Entry {
	e.Report.SpeedKn = units.ConvertSpeed(e.Report.SpeedKn, s.units)
	return e
}

func (s *Server) listVessels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	entries := s.harbor.Snapshot()
	for i := range entries {
		entries[i] = s.convertEntrySpeed(entries[i])
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	if r.URL.Query().Get("source") == "db" {
		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			parsed, err := strconv.Atoi(l)
			if err != nil || parsed < 1 {
				httputil.BadRequest(w, "Invalid 'limit' parameter")
				return
			}
			limit = parsed
		}
		stored, err := s.db.LatestAssessments(limit)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("Failed to retrieve assessments: %v", err))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, stored)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, s.harbor.Assessments())
}

func (s *Server) showFleetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	summary := assess.Summarize(s.harbor.Assessments())
	summary.P50SpeedKn = units.ConvertSpeed(summary.P50SpeedKn, s.units)
	summary.P85SpeedKn = units.ConvertSpeed(summary.P85SpeedKn, s.units)
	summary.P98SpeedKn = units.ConvertSpeed(summary.P98SpeedKn, s.units)
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) showThreatRollup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	days := 1 // default value
	if d := r.URL.Query().Get("days"); d != "" {
		parsedDays, err := strconv.Atoi(d)
		if err != nil || parsedDays < 1 {
			httputil.BadRequest(w, "Invalid 'days' parameter")
			return
		}
		days = parsedDays
	}

	rollup, err := s.db.ThreatRollup(days)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("Failed to retrieve threat rollup: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rollup)
}

func (s *Server) showSite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, s.bridge)
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	config := map[string]interface{}{
		"units":   s.units,
		"bridge":  s.bridge.Name,
		"piers":   len(s.bridge.Piers),
		"version": version.Version,
	}
	httputil.WriteJSON(w, http.StatusOK, config)
}
