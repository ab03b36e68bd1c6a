package api

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/player"
)

type defaultsSource interface {
	Defaults(ctx context.Context) (filter.State, error)
}

// parseFilter builds a filter.State from query parameters. Bounds that are not
// given fall back to the dataset defaults.
func parseFilter(ctx context.Context, src defaultsSource, q url.Values) (filter.State, error) {
	const op = "parse filter"

	st, err := src.Defaults(ctx)
	if err != nil {
		return filter.State{}, err
	}
	st.Teams = listParam(q, "team")
	st.Positions = listParam(q, "position")

	bounds := []struct {
		name string
		dst  *float64
	}{
		{"age_min", &st.Age.Lo},
		{"age_max", &st.Age.Hi},
		{"height_min", &st.Height.Lo},
		{"height_max", &st.Height.Hi},
	}
	for _, b := range bounds {
		raw := strings.TrimSpace(q.Get(b.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter.State{}, WrapKind(ErrBadRequest, op, Wrap(b.name, err))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return filter.State{}, NewKind(ErrBadRequest, fmt.Sprintf("%s: %s: %q is not a finite number", op, b.name, raw))
		}
		*b.dst = v
	}
	return st, nil
}

// listParam collects repeated and comma-separated values of name.
func listParam(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseAxes reads the x and y query parameters. Whether they name a plottable
// statistic is left to the projection.
func parseAxes(q url.Values) (player.StatKey, player.StatKey, error) {
	x, y := strings.TrimSpace(q.Get("x")), strings.TrimSpace(q.Get("y"))
	if x == "" || y == "" {
		return "", "", NewKind(ErrBadRequest, "x and y are required")
	}
	return player.StatKey(x), player.StatKey(y), nil
}

// parseGroup reads the detail group index; absent means the first group.
func parseGroup(q url.Values) (int, error) {
	raw := strings.TrimSpace(q.Get("group"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, WrapKind(ErrBadRequest, "parse group", err)
	}
	return n, nil
}
