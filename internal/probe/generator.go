package probe

import (
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/player"
)

// Query is one projection request and the filter it encodes.
type Query struct {
	Filter filter.State
	X, Y   player.StatKey
}

// Values encodes q as /projection query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("x", string(q.X))
	v.Set("y", string(q.Y))
	if len(q.Filter.Teams) > 0 {
		v.Set("team", strings.Join(q.Filter.Teams, ","))
	}
	for _, p := range q.Filter.Positions {
		v.Add("position", p)
	}
	v.Set("age_min", formatFloat(q.Filter.Age.Lo))
	v.Set("age_max", formatFloat(q.Filter.Age.Hi))
	v.Set("height_min", formatFloat(q.Filter.Height.Lo))
	v.Set("height_max", formatFloat(q.Filter.Height.Hi))
	return v
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// generateQueries draws n queries within the observed facets. The first query
// is always the unrestricted default filter.
func generateQueries(rng *rand.Rand, facets filter.Facets, n int) []Query {
	queries := make([]Query, 0, n)
	for i := range n {
		q := Query{
			Filter: filter.State{Age: facets.AgeRange, Height: facets.HeightRange},
			X:      player.Axes[rng.IntN(len(player.Axes))],
			Y:      player.Axes[rng.IntN(len(player.Axes))],
		}
		if i > 0 {
			q.Filter.Teams = subset(rng, facets.Teams)
			q.Filter.Positions = subset(rng, facets.Positions)
			q.Filter.Age = subInterval(rng, facets.AgeRange)
			q.Filter.Height = subInterval(rng, facets.HeightRange)
		}
		queries = append(queries, q)
	}
	return queries
}

// subset keeps each value with probability one half. Team and position names
// containing commas are skipped since they would split in the query string.
func subset(rng *rand.Rand, values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" && !strings.Contains(v, ",") && rng.IntN(2) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// subInterval picks whole-number bounds inside iv.
func subInterval(rng *rand.Rand, iv filter.Interval) filter.Interval {
	width := int(iv.Hi - iv.Lo)
	if width <= 0 {
		return iv
	}
	lo := iv.Lo + float64(rng.IntN(width+1))
	hi := lo + float64(rng.IntN(int(iv.Hi-lo)+1))
	return filter.Interval{Lo: lo, Hi: hi}
}
