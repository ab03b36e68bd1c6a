package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/vnl/internal/probe"
	"github.com/okian/vnl/pkg/logger"
)

// Default configuration constants.
const (
	defaultQueries      = 500
	defaultLookups      = 50
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultReadyTimeout = 2 * time.Minute
	defaultProbeTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the explorer")
		datasetPath  = flag.String("dataset", "data/merged_stats.csv", "Local copy of the dataset the explorer serves")
		policy       = flag.String("duplicate-policy", "keep_first", "Duplicate policy the explorer runs with")
		ignoreCase   = flag.Bool("ignore-case", false, "Whether the explorer matches duplicate names ignoring case")
		queries      = flag.Int("queries", defaultQueries, "Number of projection queries to check")
		lookups      = flag.Int("lookups", defaultLookups, "Number of player lookups to check")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		readyTimeout = flag.Duration("ready-timeout", defaultReadyTimeout, "How long to wait for the dataset to load")
		seed         = flag.Int64("seed", time.Now().UnixNano(), "Seed for query generation")
		format       = flag.String("log-format", "text", "Log format: text or json")
		verbose      = flag.Bool("verbose", false, "Log every mismatch and failure")
	)
	flag.Parse()

	if err := logger.InitWith(logger.WithFormat(*format), logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	config := &probe.Config{
		BaseURL:         *baseURL,
		Dataset:         *datasetPath,
		DuplicatePolicy: *policy,
		IgnoreCase:      *ignoreCase,
		Queries:         *queries,
		Lookups:         *lookups,
		Workers:         *workers,
		Timeout:         *timeout,
		ReadyTimeout:    *readyTimeout,
		Seed:            *seed,
		Verbose:         *verbose,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Any("seed", *seed), logger.Error(err))
		os.Exit(1)
	}
}
