// Package probe cross-checks a running explorer against a local load of the
// same dataset by issuing concurrent projection and lookup requests.
package probe

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/vnl/internal/adapters/dataset"
	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/normalize"
	"github.com/okian/vnl/internal/domain/projection"
	"github.com/okian/vnl/pkg/logger"
)

// Runner configuration constants.
const (
	readyPollInterval       = 500 * time.Millisecond
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
)

// Run executes the complete probe. It returns ErrMismatch when any response
// disagrees with the local computation.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("probe")

	log.Info(ctx, "starting explorer probe",
		logger.String("baseURL", config.BaseURL),
		logger.String("dataset", config.Dataset),
		logger.Int("queries", config.Queries),
		logger.Int("lookups", config.Lookups),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.Timeout)

	status, err := waitReady(ctx, client, config)
	if err != nil {
		return stats, err
	}

	snap, err := loadLocal(ctx, config)
	if err != nil {
		return stats, fmt.Errorf("local dataset load failed: %w", err)
	}
	if status.Records != len(snap.Records) {
		return stats, fmt.Errorf("%w: explorer has %d records, local copy has %d",
			ErrMismatch, status.Records, len(snap.Records))
	}

	rng := rand.New(rand.NewPCG(uint64(config.Seed), uint64(config.Seed>>1))) //nolint:gosec // reproducible queries, not security
	queries := generateQueries(rng, snap.Facets, config.Queries)
	stats.QueriesGenerated = len(queries)

	checkProjections(ctx, client, config, snap, queries, stats)
	checkLookups(ctx, client, config, snap, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.QueriesMismatch > 0 {
		return stats, fmt.Errorf("%w: %d of %d projections", ErrMismatch, stats.QueriesMismatch, stats.QueriesChecked)
	}
	if stats.QueriesFailed > 0 || stats.LookupsFailed > 0 {
		return stats, fmt.Errorf("%w: %d projections and %d lookups failed",
			ErrUnhealthy, stats.QueriesFailed, stats.LookupsFailed)
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// waitReady polls /dataset until the explorer reports ready or failed.
func waitReady(ctx context.Context, client *HTTPClient, config *Config) (datasetStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, config.ReadyTimeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		var st datasetStatus
		err := client.getJSON(ctx, config.BaseURL+"/dataset", &st)
		switch {
		case err == nil && st.State == "ready":
			logger.Get().Info(ctx, "explorer is ready",
				logger.String("version", st.Version), logger.Int("records", st.Records))
			return st, nil
		case err == nil && st.State == "failed":
			return st, fmt.Errorf("%w: %s", ErrLoadFailed, st.Error)
		}

		select {
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
			return st, fmt.Errorf("%w: %w", ErrUnhealthy, err)
		case <-ticker.C:
		}
	}
}

func loadLocal(ctx context.Context, config *Config) (*dataset.Snapshot, error) {
	policy, err := normalize.ParseDuplicatePolicy(config.DuplicatePolicy)
	if err != nil {
		return nil, err
	}
	n := normalize.New(
		normalize.WithDuplicatePolicy(policy),
		normalize.WithCaseInsensitiveNames(config.IgnoreCase),
	)
	loader := dataset.NewLoader(dataset.WithNormalizer(n))
	return loader.Load(ctx, config.Dataset)
}

// checkProjections runs queries through a worker pool and compares each
// response with the local projection.
func checkProjections(ctx context.Context, client *HTTPClient, config *Config, snap *dataset.Snapshot, queries []Query, stats *Stats) {
	var checked, matched, mismatched, failed int64

	workers := max(config.Workers, 1)
	jobs := make(chan Query, workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range jobs {
				atomic.AddInt64(&checked, 1)
				err := checkProjection(ctx, client, config.BaseURL, snap, q)
				switch {
				case err == nil:
					atomic.AddInt64(&matched, 1)
				case isMismatch(err):
					atomic.AddInt64(&mismatched, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "projection mismatch", logger.String("query", q.Values().Encode()), logger.Error(err))
					}
				default:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "projection request failed", logger.String("query", q.Values().Encode()), logger.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, q := range queries {
			select {
			case <-ctx.Done():
				return
			case jobs <- q:
			}
		}
	}()

	wg.Wait()

	stats.QueriesChecked = int(atomic.LoadInt64(&checked))
	stats.QueriesMatched = int(atomic.LoadInt64(&matched))
	stats.QueriesMismatch = int(atomic.LoadInt64(&mismatched))
	stats.QueriesFailed = int(atomic.LoadInt64(&failed))
}

func checkProjection(ctx context.Context, client *HTTPClient, baseURL string, snap *dataset.Snapshot, q Query) error {
	var remote projectionResult
	if err := client.getJSON(ctx, baseURL+"/projection?"+q.Values().Encode(), &remote); err != nil {
		return err
	}
	local, err := projection.Project(filter.Apply(snap.Records, q.Filter), q.X, q.Y)
	if err != nil {
		return err
	}
	return verifyProjection(local, remote)
}

// checkLookups fetches the first detail group of up to config.Lookups players.
func checkLookups(ctx context.Context, client *HTTPClient, config *Config, snap *dataset.Snapshot, stats *Stats) {
	n := min(config.Lookups, len(snap.Records))
	for _, r := range snap.Records[:n] {
		stats.LookupsChecked++
		var view detailResult
		err := client.getJSON(ctx, config.BaseURL+"/player/"+url.PathEscape(r.Name), &view)
		if err == nil && view.Name != r.Name {
			err = fmt.Errorf("%w: detail for %q returned %q", ErrMismatch, r.Name, view.Name)
		}
		if err != nil {
			stats.LookupsFailed++
			if config.Verbose {
				logger.Get().Warn(ctx, "lookup failed", logger.String("name", r.Name), logger.Error(err))
			}
		}
	}
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var matchRate, queriesPerSecond float64
	if stats.QueriesChecked > 0 {
		matchRate = float64(stats.QueriesMatched) / float64(stats.QueriesChecked) * percentageMultiplier
	}
	if stats.Duration > 0 {
		queriesPerSecond = float64(stats.QueriesChecked) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("queriesGenerated", stats.QueriesGenerated),
		logger.Int("queriesChecked", stats.QueriesChecked),
		logger.Int("queriesMatched", stats.QueriesMatched),
		logger.Int("queriesMismatch", stats.QueriesMismatch),
		logger.Int("queriesFailed", stats.QueriesFailed),
		logger.Int("lookupsChecked", stats.LookupsChecked),
		logger.Int("lookupsFailed", stats.LookupsFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("matchRate", matchRate),
		logger.Float64("queriesPerSecond", queriesPerSecond))
}
