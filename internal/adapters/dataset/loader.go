package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/vnl/internal/domain/normalize"
	"github.com/okian/vnl/internal/domain/player"
	"github.com/okian/vnl/internal/domain/rating"
	"github.com/okian/vnl/pkg/metrics"
)

// Loader fetches, normalizes and optionally enriches the dataset.
type Loader struct {
	client     *http.Client
	normalizer *normalize.Normalizer
	backfill   bool
	now        func() time.Time
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:     http.DefaultClient,
		normalizer: normalize.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads source once and builds a snapshot. Any failure is wrapped in ErrLoad.
func (l *Loader) Load(ctx context.Context, source string) (*Snapshot, error) {
	start := time.Now()
	defer func() {
		metrics.RecordDatasetLoadDuration(float64(time.Since(start).Milliseconds()))
	}()

	body, err := Fetch(ctx, l.client, source)
	if err != nil {
		metrics.RecordErrorByComponent("dataset", "fetch")
		return nil, err
	}
	defer func() { _ = body.Close() }()

	res, err := l.normalizer.Normalize(ctx, body)
	if err != nil {
		metrics.RecordErrorByComponent("dataset", "normalize")
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	records := res.Records
	var backfilled []player.StatKey
	if l.backfill {
		for _, c := range rating.Categories {
			if !res.Has(c.Rating) {
				backfilled = append(backfilled, c.Rating)
				metrics.RecordRatingBackfill(string(c.Rating))
			}
		}
		records = rating.Backfill(records, res.Has)
	}

	report := Report{
		Rows:       res.Rows,
		Dropped:    res.Dropped,
		Gaps:       res.Gaps,
		Duplicates: res.Duplicates,
		Backfilled: backfilled,
	}
	return NewSnapshot(uuid.NewString(), source, l.now(), records, report), nil
}
