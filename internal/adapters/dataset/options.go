package dataset

import (
	"net/http"
	"time"

	"github.com/okian/vnl/internal/domain/normalize"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithNormalizer sets the CSV normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(l *Loader) {
		if n != nil {
			l.normalizer = n
		}
	}
}

// WithRatingBackfill enables computing category ratings absent from the file.
func WithRatingBackfill(enabled bool) Option {
	return func(l *Loader) {
		l.backfill = enabled
	}
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}
