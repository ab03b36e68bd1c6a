// Package dataset loads the player dataset and serves the published snapshot.
package dataset

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/player"
	"github.com/okian/vnl/pkg/metrics"
)

// Report summarizes what normalization did to the raw file.
type Report struct {
	Rows       int              `json:"rows"`
	Dropped    int              `json:"dropped"`
	Gaps       int              `json:"gaps"`
	Duplicates []string         `json:"duplicates"`
	Backfilled []player.StatKey `json:"backfilled"`
}

// Snapshot is an immutable loaded dataset.
type Snapshot struct {
	Version  string
	LoadedAt time.Time
	Source   string
	Records  []player.Record
	Facets   filter.Facets
	Defaults filter.State
	Report   Report

	byName map[string]int
}

// NewSnapshot indexes records and derives facets and default filters.
func NewSnapshot(version, source string, loadedAt time.Time, records []player.Record, report Report) *Snapshot {
	byName := make(map[string]int, len(records))
	for i, r := range records {
		if _, ok := byName[r.Name]; !ok {
			byName[r.Name] = i
		}
	}
	return &Snapshot{
		Version:  version,
		LoadedAt: loadedAt,
		Source:   source,
		Records:  records,
		Facets:   filter.Observe(records),
		Defaults: filter.Defaults(records),
		Report:   report,
		byName:   byName,
	}
}

// Find returns the record with the exact name.
func (s *Snapshot) Find(name string) (player.Record, bool) {
	i, ok := s.byName[name]
	if !ok {
		return player.Record{}, false
	}
	return s.Records[i], true
}

// Store holds the current snapshot. Publishing swaps the pointer atomically, so
// readers never see a partially built dataset.
type Store struct {
	snapshot atomic.Pointer[Snapshot]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Publish makes snap the current snapshot.
func (s *Store) Publish(snap *Snapshot) {
	s.snapshot.Store(snap)
	metrics.UpdateDatasetReport(len(snap.Records), snap.Report.Dropped, len(snap.Report.Duplicates), snap.Report.Gaps)
	metrics.UpdateDatasetLoadedUnix(float64(snap.LoadedAt.Unix()))
}

// Snapshot returns the current snapshot or ErrNotLoaded.
func (s *Store) Snapshot(_ context.Context) (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Find looks up a player by exact name in the current snapshot.
func (s *Store) Find(ctx context.Context, name string) (player.Record, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return player.Record{}, err
	}
	r, ok := snap.Find(name)
	if !ok {
		metrics.RecordErrorByComponent("dataset", "not_found")
		return player.Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r, nil
}

// Count returns the number of records in the current snapshot, or 0.
func (s *Store) Count(_ context.Context) int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.Records)
}
