// Package dedupe tracks which player names have already been loaded.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen identifiers.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Repeated returns ids that were offered more than once, in first-seen order.
	Repeated() []string
}

// Option configures an in-memory deduper.
type Option func(*inMemoryDeduper)

// WithKeyFunc canonicalizes ids before comparison, e.g. strings.ToLower for
// case-insensitive names. The default compares ids verbatim.
func WithKeyFunc(fn func(string) string) Option {
	return func(d *inMemoryDeduper) {
		if fn != nil {
			d.key = fn
		}
	}
}

type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]int // key -> times offered
	repeated []string
	key      func(string) string
}

// NewInMemoryDeduper creates an unbounded map-backed deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[string]int),
		key:  func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	k := d.key(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.seen[k]
	d.seen[k] = n + 1
	if n == 1 {
		d.repeated = append(d.repeated, id)
	}
	return n > 0
}

func (d *inMemoryDeduper) Repeated() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.repeated))
	copy(out, d.repeated)
	return out
}
