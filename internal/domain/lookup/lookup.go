// Package lookup implements free-text player search and the grouped detail view.
package lookup

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/vnl/internal/domain/player"
)

// Search returns the records whose name contains q, ignoring case. An empty query
// matches everything. Order is preserved.
func Search(records []player.Record, q string) []player.Record {
	if q == "" {
		return records
	}
	lower := cases.Lower(language.Und)
	needle := lower.String(q)
	out := make([]player.Record, 0)
	for _, r := range records {
		if strings.Contains(lower.String(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Row is one labelled value of a detail page.
type Row struct {
	Key   player.StatKey `json:"key"`
	Value string         `json:"value"`
}

// View is one page of a player's detail card.
type View struct {
	Name       string `json:"name"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	GroupIndex int    `json:"group_index"`
	GroupCount int    `json:"group_count"`
	Label      string `json:"label"`
	Rows       []Row  `json:"rows"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
}

// Detail renders group groupIdx of r. The index is clamped to the valid range.
func Detail(r player.Record, groupIdx int) View {
	count := len(player.DetailGroups)
	idx := min(max(groupIdx, 0), count-1)
	g := player.DetailGroups[idx]

	rows := make([]Row, 0, len(g.Keys))
	for _, key := range g.Keys {
		rows = append(rows, Row{Key: key, Value: display(r, key)})
	}
	return View{
		Name:       r.Name,
		Team:       r.Team,
		Position:   r.Position,
		GroupIndex: idx,
		GroupCount: count,
		Label:      g.Label,
		Rows:       rows,
		HasPrev:    idx > 0,
		HasNext:    idx < count-1,
	}
}

func display(r player.Record, key player.StatKey) string {
	switch key {
	case player.KeyTeam:
		return player.CountryName(r.Team)
	case player.KeyPosition:
		return player.FormatPosition(r.Position)
	}
	return r.Value(key).String()
}
