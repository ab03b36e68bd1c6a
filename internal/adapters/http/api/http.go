// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/vnl/internal/adapters/dataset"
	service "github.com/okian/vnl/internal/app"
	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/lookup"
	"github.com/okian/vnl/internal/domain/player"
	"github.com/okian/vnl/internal/domain/projection"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DatasetDependencies
	FilterDependencies
	ProjectionDependencies
	LookupDependencies
}

// DatasetDependencies expose the load status and filter facets.
type DatasetDependencies interface {
	Status(ctx context.Context) service.Status
	Facets(ctx context.Context) (filter.Facets, error)
	Defaults(ctx context.Context) (filter.State, error)
	Axes(groups []string, q string) []player.StatKey
}

// FilterDependencies apply filters to the dataset.
type FilterDependencies interface {
	Defaults(ctx context.Context) (filter.State, error)
	Filter(ctx context.Context, st filter.State) ([]player.Record, error)
}

// ProjectionDependencies build scatter views.
type ProjectionDependencies interface {
	Defaults(ctx context.Context) (filter.State, error)
	Project(ctx context.Context, st filter.State, x, y player.StatKey) (service.Projection, error)
	Chart(ctx context.Context, st filter.State, x, y player.StatKey) ([]byte, error)
}

// LookupDependencies search players and render detail views.
type LookupDependencies interface {
	Lookup(ctx context.Context, q string) ([]player.Record, error)
	Detail(ctx context.Context, name string, group int) (lookup.View, error)
}

// Server wires HTTP routes for the explorer API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	datasetHandler    *DatasetHandler
	playersHandler    *PlayersHandler
	projectionHandler *ProjectionHandler
	lookupHandler     *LookupHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		datasetHandler:    NewDatasetHandler(deps),
		playersHandler:    NewPlayersHandler(deps),
		projectionHandler: NewProjectionHandler(deps),
		lookupHandler:     NewLookupHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dataset", MetricsMiddleware(s.datasetHandler.HandleStatus, "dataset"))
	mux.HandleFunc("/facets", MetricsMiddleware(s.datasetHandler.HandleFacets, "facets"))
	mux.HandleFunc("/axes", MetricsMiddleware(s.datasetHandler.HandleAxes, "axes"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleList, "players"))
	mux.HandleFunc("/projection", MetricsMiddleware(s.projectionHandler.HandleProjection, "projection"))
	mux.HandleFunc("/chart.png", MetricsMiddleware(s.projectionHandler.HandleChart, "chart"))
	mux.HandleFunc("/lookup", MetricsMiddleware(s.lookupHandler.HandleLookup, "lookup"))
	mux.HandleFunc("/player/", MetricsMiddleware(s.lookupHandler.HandleDetail, "player"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates domain and lifecycle errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLoadFailed):
		writeError(w, http.StatusServiceUnavailable, "load_failed", err)
	case errors.Is(err, service.ErrNotReady):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	case errors.Is(err, projection.ErrUnknownAxis):
		writeError(w, http.StatusBadRequest, "unknown_axis", err)
	case errors.Is(err, dataset.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// allowGet rejects non-GET requests the way the mux rejects unknown paths.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return false
	}
	return true
}
