// Package api provides the HTTP inspection surface for Gearline: the
// simulation snapshot, the machine/recipe catalog, the event log, and
// health/metrics endpoints.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/health"
	"github.com/gearline/gearline/internal/infra/sqlite"
	"github.com/gearline/gearline/internal/sim"
	"github.com/gearline/gearline/internal/sim/catalog"
)

// Server is the Gearline HTTP API server.
type Server struct {
	sim            *sim.Simulator
	cat            *catalog.Catalog
	db             *sqlite.DB      // nil when persistence is disabled
	health         *health.Checker // nil until SetHealth
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(s *sim.Simulator, cat *catalog.Catalog, db *sqlite.DB) *Server {
	return &Server{sim: s, cat: cat, db: db}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker surfaced at /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/version", s.handleVersion)
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/events", s.handleEvents)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Handlers ───────────────────────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	if !s.health.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"healthy": s.health.Healthy(),
		"checks":  s.health.Statuses(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.sim.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "Gearline is running",
		"tick":           snap.Tick,
		"nodes":          len(snap.Nodes),
		"current_stress": snap.Stress,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": "0.1.0"})
}

// handleSnapshot returns the read-only diagnostic view of the most
// recently completed tick.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Snapshot())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type recipeView struct {
		Key       string  `json:"key"`
		Output    string  `json:"output"`
		Count     int     `json:"count"`
		Time      float64 `json:"time"`
		NeedsHeat bool    `json:"needs_heat"`
	}

	recipes := map[string][]recipeView{}
	for _, kind := range []domain.ProcessKind{domain.ProcessPressing, domain.ProcessMilling, domain.ProcessMixing} {
		for _, rec := range s.cat.RecipeTable(kind) {
			recipes[string(kind)] = append(recipes[string(kind)], recipeView{
				Key:       rec.Key(),
				Output:    string(rec.Output),
				Count:     rec.Count,
				Time:      rec.Time,
				NeedsHeat: rec.NeedsHeat,
			})
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"machines": s.cat.Templates(),
		"recipes":  recipes,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	events, err := s.db.RecentEvents(100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"message": msg, "type": "error"},
	})
}

// corsMiddleware adds CORS headers for local tooling.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
