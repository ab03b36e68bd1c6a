package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/vnl/internal/adapters/chart"
	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/player"
	"github.com/okian/vnl/internal/domain/projection"
)

// ProjectionHandler serves scatter points and the rendered chart.
type ProjectionHandler struct {
	deps ProjectionDependencies
}

// NewProjectionHandler creates a new projection handler.
func NewProjectionHandler(deps ProjectionDependencies) *ProjectionHandler {
	return &ProjectionHandler{deps: deps}
}

type pointJSON struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Position string  `json:"position"`
}

type projectionResponse struct {
	X      player.StatKey     `json:"x"`
	Y      player.StatKey     `json:"y"`
	Count  int                `json:"count"`
	Points []pointJSON        `json:"points"`
	Bounds *projection.Bounds `json:"bounds"`
}

type projectionRequest struct {
	x, y   player.StatKey
	filter filter.State
}

// parseRequest validates the axes before touching the dataset so an unknown
// axis is reported even while loading.
func (h *ProjectionHandler) parseRequest(r *http.Request) (req projectionRequest, err error) {
	q := r.URL.Query()
	req.x, req.y, err = parseAxes(q)
	if err != nil {
		return req, err
	}
	for _, k := range []player.StatKey{req.x, req.y} {
		if !player.IsAxis(k) {
			return req, fmt.Errorf("%w: %q", projection.ErrUnknownAxis, k)
		}
	}
	req.filter, err = parseFilter(r.Context(), h.deps, q)
	return req, err
}

// HandleProjection handles GET /projection requests.
func (h *ProjectionHandler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	req, err := h.parseRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	p, err := h.deps.Project(r.Context(), req.filter, req.x, req.y)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := projectionResponse{X: p.X, Y: p.Y, Count: len(p.Points), Points: make([]pointJSON, 0, len(p.Points))}
	for _, pt := range p.Points {
		resp.Points = append(resp.Points, pointJSON{
			X: pt.X, Y: pt.Y,
			Name: pt.Record.Name, Team: pt.Record.Team, Position: pt.Record.Position,
		})
	}
	if p.HasBounds {
		b := p.Bounds
		resp.Bounds = &b
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleChart handles GET /chart.png requests. An empty projection answers
// 204 with no body.
func (h *ProjectionHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	req, err := h.parseRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	img, err := h.deps.Chart(r.Context(), req.filter, req.x, req.y)
	if errors.Is(err, chart.ErrEmpty) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
