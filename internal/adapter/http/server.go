// Package http exposes the simulation engine over HTTP alongside health,
// readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/breezelabs/turbine-sim/internal/domain"
	"github.com/breezelabs/turbine-sim/internal/export"
	"github.com/breezelabs/turbine-sim/internal/simulation"
)

// SimulationRunner executes parameterized simulation runs.
type SimulationRunner interface {
	Run(ctx context.Context, params domain.SimulationParams) (domain.Result, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the simulation API plus health, readiness, and metrics
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	runner     SimulationRunner
	publisher  simulation.SummaryPublisher
	baseParams domain.SimulationParams
	logger     *slog.Logger
}

// NewServer creates the HTTP server. publisher may be nil when summary
// publishing is disabled.
func NewServer(addr string, runner SimulationRunner, publisher simulation.SummaryPublisher, baseParams domain.SimulationParams, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner:     runner,
		publisher:  publisher,
		baseParams: baseParams,
		logger:     logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/presets", s.handlePresets)
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("POST /api/simulate/csv", s.handleSimulateCSV)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.runner.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// presetEntry is one row of the preset catalog response.
type presetEntry struct {
	Name    domain.Preset      `json:"name"`
	Turbine domain.TurbineSpec `json:"turbine"`
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	presets := domain.Presets()
	entries := make([]presetEntry, 0, len(presets))
	for _, name := range presets {
		spec, _ := domain.PresetTurbine(name)
		entries = append(entries, presetEntry{Name: name, Turbine: spec})
	}
	writeJSON(w, http.StatusOK, entries)
}

// simulateRequest is the HTTP request body: a run request plus response
// shaping flags.
type simulateRequest struct {
	domain.RunRequest
	// IncludeSeries adds the raw aligned sample arrays to the response.
	IncludeSeries bool `json:"include_series"`
	// IncludeCurve adds a theoretical power curve sweep (0–30 m/s).
	IncludeCurve bool `json:"include_curve"`
}

// simulateResponse mirrors RunSummary with optional series data.
type simulateResponse struct {
	RunID        string                    `json:"run_id"`
	Params       domain.SimulationParams   `json:"params"`
	Metrics      domain.PerformanceMetrics `json:"metrics"`
	SampleCount  int                       `json:"sample_count"`
	CompletedAt  time.Time                 `json:"completed_at"`
	WindSpeeds   []float64                 `json:"wind_speeds_m_s,omitempty"`
	PowerOutputs []float64                 `json:"power_outputs_w,omitempty"`
	PowerCurve   []domain.CurvePoint       `json:"power_curve,omitempty"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req, result, ok := s.runFromRequest(w, r)
	if !ok {
		return
	}

	resp := simulateResponse{
		RunID:       result.RunID,
		Params:      result.Params,
		Metrics:     result.Metrics,
		SampleCount: len(result.WindSpeeds),
		CompletedAt: result.CompletedAt,
	}
	if req.IncludeSeries {
		resp.WindSpeeds = result.WindSpeeds
		resp.PowerOutputs = result.PowerOutputs
	}
	if req.IncludeCurve {
		resp.PowerCurve = domain.PowerCurve(result.Params.Turbine, result.Params.Environment, result.Params.Limits, 30, 100)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulateCSV(w http.ResponseWriter, r *http.Request) {
	_, result, ok := s.runFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wind_turbine_simulation_data.csv"`)
	if err := export.WriteCSV(w, result); err != nil {
		// Headers are already out; all we can do is log.
		s.logger.Error("csv export failed", "error", err, "run_id", result.RunID)
	}
}

// runFromRequest decodes the body, executes the run, and publishes the
// summary. It writes the error response itself and reports ok=false when the
// caller should stop.
func (s *Server) runFromRequest(w http.ResponseWriter, r *http.Request) (simulateRequest, domain.Result, bool) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body: " + err.Error()})
		return req, domain.Result{}, false
	}

	params, err := req.Resolve(s.baseParams)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return req, domain.Result{}, false
	}

	result, err := s.runner.Run(r.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return req, domain.Result{}, false
	}

	if s.publisher != nil {
		if err := s.publisher.PublishBatch(r.Context(), []domain.RunSummary{result.Summary()}); err != nil {
			// Publishing is best-effort for API-triggered runs; the caller
			// still gets their result.
			s.logger.Warn("publish summary failed", "error", err, "run_id", result.RunID)
		}
	}

	return req, result, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
