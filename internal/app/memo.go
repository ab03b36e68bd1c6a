package service

import (
	"strings"
	"sync"

	"github.com/okian/vnl/pkg/metrics"
)

// memo caches derived views keyed by snapshot version and request. A full memo
// is cleared before the next insert.
type memo struct {
	mu      sync.Mutex
	max     int
	entries map[string]any
}

func newMemo(max int) *memo {
	return &memo{max: max, entries: make(map[string]any)}
}

func memoKey(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

func (m *memo) get(view, key string) (any, bool) {
	m.mu.Lock()
	v, ok := m.entries[key]
	m.mu.Unlock()
	if ok {
		metrics.RecordMemoHit(view)
	} else {
		metrics.RecordMemoMiss(view)
	}
	return v, ok
}

func (m *memo) put(key string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max <= 0 {
		return
	}
	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.max {
		clear(m.entries)
	}
	m.entries[key] = v
}

func (m *memo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *memo) reset() {
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
}
