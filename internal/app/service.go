// Package service loads the player dataset once and serves the derived views
// required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/vnl/internal/adapters/chart"
	"github.com/okian/vnl/internal/adapters/dataset"
	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/lookup"
	"github.com/okian/vnl/internal/domain/player"
	"github.com/okian/vnl/internal/domain/projection"
	"github.com/okian/vnl/pkg/logger"
	"github.com/okian/vnl/pkg/metrics"
)

// State is the dataset lifecycle state.
type State string

// Lifecycle states. Failed is terminal for the process lifetime.
const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Status describes the loaded dataset.
type Status struct {
	State    State
	Version  string
	LoadedAt time.Time
	Source   string
	Report   dataset.Report
	Records  int
	Err      error
}

// Projection is a memoized scatter view.
type Projection struct {
	X         player.StatKey
	Y         player.StatKey
	Points    []projection.Point
	Bounds    projection.Bounds
	HasBounds bool
}

// Service implements the API dependencies for the stats explorer.
type Service struct {
	mu sync.RWMutex

	loader   *dataset.Loader
	store    *dataset.Store
	renderer *chart.Renderer
	memo     *memo

	// Configuration
	source       string
	fetchTimeout time.Duration
	memoSize     int

	// State
	started  bool
	state    State
	loadErr  error
	loadTook time.Duration

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the dataset location: a file path or an http(s) URL.
func WithSource(source string) Option {
	return func(s *Service) {
		s.source = source
	}
}

// WithFetchTimeout bounds the one-shot dataset load.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithLoader sets the dataset loader.
func WithLoader(l *dataset.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r *chart.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithMemoSize caps the number of memoized views. Zero disables memoization.
func WithMemoSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.memoSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:        dataset.NewStore(),
		fetchTimeout: 10 * time.Second,
		memoSize:     256,
		state:        StateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loader == nil {
		s.loader = dataset.NewLoader()
	}
	if s.renderer == nil {
		s.renderer = chart.New()
	}
	s.memo = newMemo(s.memoSize)
	_ = metrics.UpdateDatasetState(string(s.state))
	return s
}

// Start performs the one-shot dataset load. A failed load moves the service to
// the failed state and is not returned: the service stays up to report it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == "" {
		s.mu.Unlock()
		return ErrNoSource
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "loading dataset", logger.String("source", s.source))

	loadCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	start := time.Now()
	snap, err := s.loader.Load(loadCtx, s.source)
	took := time.Since(start)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadTook = took

	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		metrics.RecordDatasetLoadFailure()
		_ = metrics.UpdateDatasetState(string(s.state))
		s.logger.Error(ctx, "dataset load failed",
			logger.String("source", s.source),
			logger.Duration("took", took),
			logger.Error(err),
		)
		return nil
	}

	s.store.Publish(snap)
	s.state = StateReady
	_ = metrics.UpdateDatasetState(string(s.state))
	s.logger.Info(ctx, "dataset loaded",
		logger.String("version", snap.Version),
		logger.Int("records", len(snap.Records)),
		logger.Int("dropped", snap.Report.Dropped),
		logger.Int("gaps", snap.Report.Gaps),
		logger.Int("duplicates", len(snap.Report.Duplicates)),
		logger.Any("backfilled", snap.Report.Backfilled),
		logger.Duration("took", took),
	)
	if len(snap.Report.Duplicates) > 0 {
		s.logger.Warn(ctx, "duplicate player names in dataset", logger.Any("names", snap.Report.Duplicates))
	}
	return nil
}

// Stop releases cached views.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.memo.reset()
	s.started = false
	s.logger.Info(context.Background(), "explorer service stopped")
}

// Status reports the lifecycle state and load report.
func (s *Service) Status(ctx context.Context) Status {
	s.mu.RLock()
	st := Status{State: s.state, Source: s.source, Err: s.loadErr}
	s.mu.RUnlock()

	if snap, err := s.store.Snapshot(ctx); err == nil {
		st.Version = snap.Version
		st.LoadedAt = snap.LoadedAt
		st.Report = snap.Report
		st.Records = len(snap.Records)
	}
	return st
}

// snapshot returns the published dataset or the lifecycle error.
func (s *Service) snapshot(ctx context.Context) (*dataset.Snapshot, error) {
	s.mu.RLock()
	state, loadErr := s.state, s.loadErr
	s.mu.RUnlock()

	switch state {
	case StateReady:
		return s.store.Snapshot(ctx)
	case StateFailed:
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, loadErr)
	default:
		return nil, ErrNotReady
	}
}

// Facets returns the selectable teams, positions and observed ranges.
func (s *Service) Facets(ctx context.Context) (filter.Facets, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return filter.Facets{}, err
	}
	return snap.Facets, nil
}

// Defaults returns the unrestricted filter for the dataset.
func (s *Service) Defaults(ctx context.Context) (filter.State, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return filter.State{}, err
	}
	return snap.Defaults, nil
}

// Filter returns the records matching st in dataset order.
func (s *Service) Filter(ctx context.Context, st filter.State) ([]player.Record, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.filtered(snap, st), nil
}

func (s *Service) filtered(snap *dataset.Snapshot, st filter.State) []player.Record {
	const view = "filter"
	key := memoKey(view, snap.Version, st.Key())
	if v, ok := s.memo.get(view, key); ok {
		return v.([]player.Record)
	}

	start := time.Now()
	out := filter.Apply(snap.Records, st)
	metrics.RecordViewLatency(view, millis(time.Since(start)))
	metrics.RecordViewResultSize(view, len(out))

	s.memo.put(key, out)
	return out
}

// Project maps the filtered records onto the x and y statistics.
func (s *Service) Project(ctx context.Context, st filter.State, x, y player.StatKey) (Projection, error) {
	const view = "projection"
	for _, k := range []player.StatKey{x, y} {
		if !player.IsAxis(k) {
			return Projection{}, fmt.Errorf("%w: %q", projection.ErrUnknownAxis, k)
		}
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Projection{}, err
	}

	key := memoKey(view, snap.Version, st.Key(), string(x), string(y))
	if v, ok := s.memo.get(view, key); ok {
		return v.(Projection), nil
	}

	records := s.filtered(snap, st)
	start := time.Now()
	points, err := projection.Project(records, x, y)
	if err != nil {
		return Projection{}, err
	}
	bounds, ok := projection.ComputeBounds(points)
	metrics.RecordViewLatency(view, millis(time.Since(start)))
	metrics.RecordViewResultSize(view, len(points))

	p := Projection{X: x, Y: y, Points: points, Bounds: bounds, HasBounds: ok}
	s.memo.put(key, p)
	return p, nil
}

// Chart renders the projection as a PNG scatter plot. An empty projection
// yields chart.ErrEmpty.
func (s *Service) Chart(ctx context.Context, st filter.State, x, y player.StatKey) ([]byte, error) {
	const view = "chart"
	p, err := s.Project(ctx, st, x, y)
	if err != nil {
		return nil, err
	}
	if len(p.Points) == 0 {
		return nil, chart.ErrEmpty
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	w, h := s.renderer.Size()
	key := memoKey(view, snap.Version, st.Key(), string(x), string(y), fmt.Sprint(w, h))
	if v, ok := s.memo.get(view, key); ok {
		return v.([]byte), nil
	}

	start := time.Now()
	img, err := s.renderer.Scatter(ctx, string(x), string(y), p.Points, p.Bounds)
	if err != nil {
		return nil, err
	}
	metrics.RecordViewLatency(view, millis(time.Since(start)))
	s.memo.put(key, img)
	return img, nil
}

// Lookup returns players whose name contains q, ignoring case.
func (s *Service) Lookup(ctx context.Context, q string) ([]player.Record, error) {
	const view = "lookup"
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := lookup.Search(snap.Records, q)
	metrics.RecordViewLatency(view, millis(time.Since(start)))
	metrics.RecordViewResultSize(view, len(out))
	return out, nil
}

// Detail returns one group of the named player's detail view.
func (s *Service) Detail(ctx context.Context, name string, groupIdx int) (lookup.View, error) {
	if _, err := s.snapshot(ctx); err != nil {
		return lookup.View{}, err
	}
	r, err := s.store.Find(ctx, name)
	if err != nil {
		return lookup.View{}, err
	}
	return lookup.Detail(r, groupIdx), nil
}

// Axes lists the plottable statistics visible for the chosen groups and query.
func (s *Service) Axes(groups []string, q string) []player.StatKey {
	return player.VisibleAxes(groups, q)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":        s.started,
		"state":          string(s.state),
		"source":         s.source,
		"fetchTimeoutMs": s.fetchTimeout.Milliseconds(),
		"memoEntries":    s.memo.len(),
		"memoSize":       s.memoSize,
		"records":        s.store.Count(ctx),
	}
	if s.loadTook > 0 {
		stats["loadMs"] = s.loadTook.Milliseconds()
	}
	if s.loadErr != nil {
		stats["error"] = s.loadErr.Error()
	}
	if snap, err := s.store.Snapshot(ctx); err == nil {
		stats["version"] = snap.Version
	}
	return stats
}

// IsUnavailable reports whether err means the dataset cannot be served.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNotReady) || errors.Is(err, ErrLoadFailed)
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
