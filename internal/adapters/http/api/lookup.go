package api

import (
	"net/http"
	"strings"
)

// LookupHandler serves player search and the detail view.
type LookupHandler struct {
	deps LookupDependencies
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(deps LookupDependencies) *LookupHandler {
	return &LookupHandler{deps: deps}
}

type lookupResponse struct {
	Query   string       `json:"query"`
	Count   int          `json:"count"`
	Players []playerJSON `json:"players"`
}

// HandleLookup handles GET /lookup?q=... requests.
func (h *LookupHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	q := r.URL.Query().Get("q")
	records, err := h.deps.Lookup(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]playerJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, toPlayerJSON(rec, false))
	}
	writeJSON(w, http.StatusOK, lookupResponse{Query: q, Count: len(out), Players: out})
}

// HandleDetail handles GET /player/{name}?group=N requests.
func (h *LookupHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/player/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(ErrBadRequest, "player name is required"))
		return
	}
	group, err := parseGroup(r.URL.Query())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	view, err := h.deps.Detail(r.Context(), name, group)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
