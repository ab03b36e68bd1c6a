// Package normalize turns the raw stats CSV into typed player records.
package normalize

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/vnl/internal/domain/dedupe"
	"github.com/okian/vnl/internal/domain/player"
	"golang.org/x/text/cases"
)

const utf8BOM = "\ufeff"

// Result is the outcome of a successful normalization.
type Result struct {
	Records []player.Record
	// Rows counts data rows read, including dropped ones.
	Rows int
	// Dropped counts rows without a player name.
	Dropped int
	// Gaps counts numeric cells that could not be coerced.
	Gaps int
	// Duplicates lists repeated names in first-seen order.
	Duplicates []string
	// Columns marks which catalog columns the header carried.
	Columns map[player.StatKey]bool
}

// Has reports whether the header carried key.
func (r Result) Has(key player.StatKey) bool { return r.Columns[key] }

// Normalizer parses CSV text into player records.
type Normalizer struct {
	policy    DuplicatePolicy
	foldNames bool
}

// New creates a Normalizer. Duplicates keep the first row by default.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{policy: KeepFirst}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Policy returns the configured duplicate-name policy.
func (n *Normalizer) Policy() DuplicatePolicy { return n.policy }

// nameKey is the identity used to detect duplicate names.
func (n *Normalizer) nameKey() func(string) string {
	if !n.foldNames {
		return func(s string) string { return s }
	}
	fold := cases.Fold()
	return func(s string) string { return fold.String(s) }
}

// Normalize reads a header row and data rows from r. Rows without a name are
// dropped; numeric cells that do not parse become unknown values.
func (n *Normalizer) Normalize(ctx context.Context, r io.Reader) (Result, error) {
	const op = "normalize"

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w: %v", op, ErrMalformedCSV, err)
	}

	cols := indexHeader(header)
	nameIdx, ok := cols[player.KeyName]
	if !ok {
		return Result{}, fmt.Errorf("%s: %w", op, ErrMissingNameColumn)
	}

	res := Result{Columns: make(map[player.StatKey]bool, len(cols))}
	for k := range cols {
		res.Columns[k] = true
	}

	key := n.nameKey()
	seen := dedupe.NewInMemoryDeduper(dedupe.WithKeyFunc(key))
	position := make(map[string]int)
	numeric := player.NumericKeys()

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w: %v", op, ErrMalformedCSV, err)
		}
		res.Rows++

		name := strings.TrimSpace(cell(row, nameIdx))
		if name == "" {
			res.Dropped++
			continue
		}

		rec := player.Record{
			Name:     name,
			Team:     strings.TrimSpace(cellAt(row, cols, player.KeyTeam)),
			Position: strings.TrimSpace(cellAt(row, cols, player.KeyPosition)),
			Stats:    make(map[player.StatKey]player.Value, len(numeric)),
		}
		for _, key := range numeric {
			v := Number(cellAt(row, cols, key))
			if res.Columns[key] && !v.IsKnown() {
				res.Gaps++
			}
			if key == player.KeyAge {
				rec.Age = v
				continue
			}
			rec.Stats[key] = v
		}
		rec.Height = Height(cellAt(row, cols, player.KeyHeight))
		if res.Columns[player.KeyHeight] && !rec.Height.IsKnown() {
			res.Gaps++
		}

		if seen.SeenAndRecord(ctx, name) {
			switch n.policy {
			case Reject:
				return Result{}, fmt.Errorf("%s: %w: %q", op, ErrDuplicateName, name)
			case KeepLast:
				res.Records[position[key(name)]] = rec
			}
			continue
		}
		position[key(name)] = len(res.Records)
		res.Records = append(res.Records, rec)
	}

	res.Duplicates = seen.Repeated()
	return res, nil
}

// Number coerces a cell with locale-independent decimal parsing. Empty or
// unparsable cells, NaN and infinities yield an unknown value.
func Number(s string) player.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return player.Unknown()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return player.Unknown()
	}
	return player.Known(f)
}

// Height extracts the first run of ASCII digits, e.g. "201 cm" -> 201.
func Height(s string) player.Value {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return player.Unknown()
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	f, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil {
		return player.Unknown()
	}
	return player.Known(f)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func indexHeader(header []string) map[player.StatKey]int {
	cols := make(map[player.StatKey]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		key := player.StatKey(strings.TrimSpace(h))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func cellAt(row []string, cols map[player.StatKey]int, key player.StatKey) string {
	i, ok := cols[key]
	if !ok {
		return ""
	}
	return cell(row, i)
}
