// Package filter applies team, position, age and height predicates to player records.
package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/vnl/internal/domain/player"
)

// Fallback ranges used when a dataset has no finite value on an axis.
var (
	FallbackAge    = Interval{Lo: 0, Hi: 100}
	FallbackHeight = Interval{Lo: 150, Hi: 230}
)

// Interval is an inclusive numeric range.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Contains reports whether lo <= v <= hi. An inverted interval contains nothing.
func (i Interval) Contains(v float64) bool {
	return v >= i.Lo && v <= i.Hi
}

// Covers reports whether i contains all of other.
func (i Interval) Covers(other Interval) bool {
	return i.Lo <= other.Lo && i.Hi >= other.Hi
}

// admits applies the permissive unknown-value policy: unknown values pass.
func (i Interval) admits(v player.Value) bool {
	f, ok := v.Get()
	if !ok {
		return true
	}
	return i.Contains(f)
}

// State is the set of user-chosen inclusion constraints. Empty sets mean no
// restriction.
type State struct {
	Teams     []string `json:"teams"`
	Positions []string `json:"positions"`
	Age       Interval `json:"age"`
	Height    Interval `json:"height"`
}

// Key returns a canonical representation used to memoize derived views.
// Set order and repeats do not affect the key.
func (s State) Key() string {
	var b strings.Builder
	writeSet(&b, "t", s.Teams)
	writeSet(&b, "p", s.Positions)
	fmt.Fprintf(&b, "a=%s..%s;h=%s..%s",
		formatFloat(s.Age.Lo), formatFloat(s.Age.Hi),
		formatFloat(s.Height.Lo), formatFloat(s.Height.Hi))
	return b.String()
}

func writeSet(b *strings.Builder, tag string, set []string) {
	sorted := slices.Clone(set)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	b.WriteString(tag)
	b.WriteByte('=')
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(v))
	}
	b.WriteByte(';')
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// Match reports whether r satisfies every predicate of s.
func (s State) Match(r player.Record) bool {
	if len(s.Teams) > 0 && !slices.Contains(s.Teams, r.Team) {
		return false
	}
	if len(s.Positions) > 0 && !slices.Contains(s.Positions, r.Position) {
		return false
	}
	return s.Age.admits(r.Age) && s.Height.admits(r.Height)
}

// Apply returns the records matching s in their original order. The input is not
// modified.
func Apply(records []player.Record, s State) []player.Record {
	out := make([]player.Record, 0, len(records))
	for _, r := range records {
		if s.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Facets summarizes the values a filter can choose from.
type Facets struct {
	Teams       []string `json:"teams"`
	Positions   []string `json:"positions"`
	AgeRange    Interval `json:"age_range"`
	HeightRange Interval `json:"height_range"`
}

// Observe collects sorted distinct teams and positions and the observed finite
// age and height ranges.
func Observe(records []player.Record) Facets {
	teams := make([]string, 0)
	positions := make([]string, 0)
	for _, r := range records {
		teams = append(teams, r.Team)
		positions = append(positions, r.Position)
	}
	slices.Sort(teams)
	slices.Sort(positions)
	return Facets{
		Teams:       slices.Compact(teams),
		Positions:   slices.Compact(positions),
		AgeRange:    observedRange(records, player.KeyAge, FallbackAge),
		HeightRange: observedRange(records, player.KeyHeight, FallbackHeight),
	}
}

// Defaults returns the unrestricted State for records: empty sets and the full
// observed ranges.
func Defaults(records []player.Record) State {
	f := Observe(records)
	return State{Age: f.AgeRange, Height: f.HeightRange}
}

func observedRange(records []player.Record, key player.StatKey, fallback Interval) Interval {
	var (
		out   Interval
		found bool
	)
	for _, r := range records {
		v, ok := r.Value(key).Get()
		if !ok {
			continue
		}
		if !found {
			out = Interval{Lo: v, Hi: v}
			found = true
			continue
		}
		out.Lo = min(out.Lo, v)
		out.Hi = max(out.Hi, v)
	}
	if !found {
		return fallback
	}
	return out
}
