package api

import (
	"net/http"

	"github.com/okian/vnl/internal/domain/player"
)

// PlayersHandler serves filtered record listings.
type PlayersHandler struct {
	deps FilterDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps FilterDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type playerJSON struct {
	Name     string                          `json:"name"`
	Team     string                          `json:"team"`
	Position string                          `json:"position"`
	Age      player.Value                    `json:"age"`
	Height   player.Value                    `json:"height"`
	Stats    map[player.StatKey]player.Value `json:"stats,omitempty"`
}

func toPlayerJSON(r player.Record, withStats bool) playerJSON {
	p := playerJSON{Name: r.Name, Team: r.Team, Position: r.Position, Age: r.Age, Height: r.Height}
	if withStats {
		p.Stats = r.Stats
	}
	return p
}

type playersResponse struct {
	Count   int          `json:"count"`
	Players []playerJSON `json:"players"`
}

// HandleList handles GET /players requests with the filter query parameters.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	st, err := parseFilter(r.Context(), h.deps, r.URL.Query())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	records, err := h.deps.Filter(r.Context(), st)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]playerJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, toPlayerJSON(rec, true))
	}
	writeJSON(w, http.StatusOK, playersResponse{Count: len(out), Players: out})
}
