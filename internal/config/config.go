// Package config defines service configuration structures and loading hooks.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// DatasetSource is a local CSV path or an http(s) URL.
	DatasetSource string `koanf:"dataset_source" validate:"required"`

	// FetchTimeoutMS bounds the one-shot dataset load.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms" validate:"gt=0"`

	// DuplicatePolicy decides which row wins when a player name repeats.
	DuplicatePolicy string `koanf:"duplicate_policy" validate:"oneof=keep_first keep_last reject"`

	// DuplicateIgnoreCase treats names differing only in case as the same player.
	DuplicateIgnoreCase bool `koanf:"duplicate_ignore_case"`

	// ComputeMissingRatings derives category ratings absent from the CSV.
	ComputeMissingRatings bool `koanf:"compute_missing_ratings"`

	// ChartWidth and ChartHeight size the rendered scatter PNG in pixels.
	ChartWidth  int `koanf:"chart_width" validate:"gte=100"`
	ChartHeight int `koanf:"chart_height" validate:"gte=100"`

	// ChartDotColor is the marker color as #rgb or #rrggbb. Empty keeps the default.
	ChartDotColor string `koanf:"chart_dot_color" validate:"omitempty,hexcolor,len=4|len=7"`

	// MemoSize caps memoized filter and projection views; 0 disables the memo.
	MemoSize int `koanf:"memo_size" validate:"gte=0"`

	// Metrics naming and histogram layout.
	MetricsNamespace   string            `koanf:"metrics_namespace" validate:"required"`
	MetricsSubsystem   string            `koanf:"metrics_subsystem"`
	MetricsBucketsMS   []float64         `koanf:"metrics_buckets_ms" validate:"dive,gt=0"`
	MetricsConstLabels map[string]string `koanf:"metrics_const_labels"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DatasetSource:      "data/merged_stats.csv",
		FetchTimeoutMS:     10_000,
		DuplicatePolicy:    "keep_first",
		ChartWidth:         800,
		ChartHeight:        600,
		MemoSize:           256,
		MetricsNamespace:   "vnl",
		MetricsSubsystem:   "explorer",
		CORSAllowedOrigins: []string{"*"},
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
