package api

import (
	"net/http"
	"time"

	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/player"
)

// DatasetHandler serves load status, facets and axis menus.
type DatasetHandler struct {
	deps DatasetDependencies
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(deps DatasetDependencies) *DatasetHandler {
	return &DatasetHandler{deps: deps}
}

type datasetResponse struct {
	State      string           `json:"state"`
	Version    string           `json:"version,omitempty"`
	LoadedAt   *time.Time       `json:"loaded_at,omitempty"`
	Source     string           `json:"source"`
	Rows       int              `json:"rows"`
	Records    int              `json:"records"`
	Dropped    int              `json:"dropped"`
	Duplicates []string         `json:"duplicates"`
	Gaps       int              `json:"gaps"`
	Backfilled []player.StatKey `json:"backfilled"`
	Error      string           `json:"error,omitempty"`
}

// HandleStatus handles GET /dataset requests. It always answers 200 so a
// client can poll it while the dataset loads.
func (h *DatasetHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	st := h.deps.Status(r.Context())
	resp := datasetResponse{
		State:      string(st.State),
		Version:    st.Version,
		Source:     st.Source,
		Rows:       st.Report.Rows,
		Records:    st.Records,
		Dropped:    st.Report.Dropped,
		Duplicates: nonNil(st.Report.Duplicates),
		Gaps:       st.Report.Gaps,
		Backfilled: nonNil(st.Report.Backfilled),
	}
	if !st.LoadedAt.IsZero() {
		t := st.LoadedAt.UTC()
		resp.LoadedAt = &t
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type facetsResponse struct {
	filter.Facets
	Defaults filter.State `json:"defaults"`
}

// HandleFacets handles GET /facets requests.
func (h *DatasetHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	f, err := h.deps.Facets(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	def, err := h.deps.Defaults(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	def.Teams = nonNil(def.Teams)
	def.Positions = nonNil(def.Positions)
	writeJSON(w, http.StatusOK, facetsResponse{Facets: f, Defaults: def})
}

type axesResponse struct {
	Groups []player.AxisGroup `json:"groups"`
	Axes   []player.StatKey   `json:"axes"`
	Count  int                `json:"count"`
}

// HandleAxes handles GET /axes?group=...&q=... requests. The axis catalog
// does not depend on the dataset, so it is served while loading.
func (h *DatasetHandler) HandleAxes(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	q := r.URL.Query()
	axes := nonNil(h.deps.Axes(listParam(q, "group"), q.Get("q")))
	writeJSON(w, http.StatusOK, axesResponse{Groups: player.AxisGroups, Axes: axes, Count: len(axes)})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
