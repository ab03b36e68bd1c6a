package metrics

import (
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dataset lifecycle states exported by the dataset_state gauge.
var datasetStates = []string{"loading", "ready", "failed"}

// Manager manages all Prometheus metrics for the explorer.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset load
	datasetRows         prometheus.Gauge
	datasetDropped      prometheus.Gauge
	datasetDuplicates   prometheus.Gauge
	datasetGaps         prometheus.Gauge
	datasetLoadedUnix   prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	datasetLoadFailures prometheus.Counter
	datasetState        *prometheus.GaugeVec

	// Derived views
	viewLatency      *prometheus.HistogramVec
	viewResultSize   *prometheus.HistogramVec
	memoHits         *prometheus.CounterVec
	memoMisses       *prometheus.CounterVec
	chartBytes       prometheus.Histogram
	ratingsBackfills *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vnl",
		subsystem:        "explorer",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGauge(m.gaugeOpts("dataset_rows", "Player records in the loaded dataset"))
	m.datasetDropped = auto.NewGauge(m.gaugeOpts("dataset_dropped_rows", "Rows dropped for a missing player name"))
	m.datasetDuplicates = auto.NewGauge(m.gaugeOpts("dataset_duplicate_names", "Player names that appeared more than once"))
	m.datasetGaps = auto.NewGauge(m.gaugeOpts("dataset_coercion_gaps", "Numeric cells that could not be parsed"))
	m.datasetLoadedUnix = auto.NewGauge(m.gaugeOpts("dataset_loaded_unix", "Unix timestamp of the last successful load"))
	m.datasetLoadDuration = auto.NewHistogram(m.histogramOpts(
		"dataset_load_duration_milliseconds", "Time to fetch and normalize the dataset",
		[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	))
	m.datasetLoadFailures = auto.NewCounter(m.counterOpts("dataset_load_failures_total", "Dataset loads that failed"))
	m.datasetState = auto.NewGaugeVec(m.gaugeOpts("dataset_state", "1 for the current dataset lifecycle state"), []string{"state"})

	m.viewLatency = auto.NewHistogramVec(
		m.histogramOpts("view_latency_milliseconds", "Latency of derived view computation", m.histogramBuckets),
		[]string{"view"},
	)
	m.viewResultSize = auto.NewHistogramVec(
		m.histogramOpts("view_result_size", "Records in a derived view result", prometheus.ExponentialBuckets(1, 2, 12)),
		[]string{"view"},
	)
	m.memoHits = auto.NewCounterVec(m.counterOpts("memo_hits_total", "Derived views served from the memo"), []string{"view"})
	m.memoMisses = auto.NewCounterVec(m.counterOpts("memo_misses_total", "Derived views recomputed"), []string{"view"})
	m.chartBytes = auto.NewHistogram(m.histogramOpts(
		"chart_png_bytes", "Size of rendered chart images",
		prometheus.ExponentialBuckets(4096, 2, 10),
	))
	m.ratingsBackfills = auto.NewCounterVec(m.counterOpts("ratings_backfilled_total", "Category ratings computed at load"), []string{"rating"})

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// Dataset Metrics Functions.

// UpdateDatasetReport sets the load report gauges.
func UpdateDatasetReport(rows, dropped, duplicates, gaps int) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetDropped.Set(float64(dropped))
	globalManager.datasetDuplicates.Set(float64(duplicates))
	globalManager.datasetGaps.Set(float64(gaps))
}

// UpdateDatasetLoadedUnix records when the dataset was published.
func UpdateDatasetLoadedUnix(ts float64) {
	globalManager.datasetLoadedUnix.Set(ts)
}

// RecordDatasetLoadDuration records the time a load attempt took.
func RecordDatasetLoadDuration(ms float64) {
	globalManager.datasetLoadDuration.Observe(ms)
}

// RecordDatasetLoadFailure increments the failed load counter.
func RecordDatasetLoadFailure() {
	globalManager.datasetLoadFailures.Inc()
}

// UpdateDatasetState marks state as current and clears the others.
func UpdateDatasetState(state string) error {
	if !slices.Contains(datasetStates, state) {
		return fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	for _, s := range datasetStates {
		v := 0.0
		if s == state {
			v = 1
		}
		globalManager.datasetState.WithLabelValues(s).Set(v)
	}
	return nil
}

// RecordRatingBackfill counts a rating column computed at load.
func RecordRatingBackfill(rating string) {
	globalManager.ratingsBackfills.WithLabelValues(rating).Inc()
}

// View Metrics Functions.

// RecordViewLatency records how long a derived view took to compute.
func RecordViewLatency(view string, ms float64) {
	globalManager.viewLatency.WithLabelValues(view).Observe(ms)
}

// RecordViewResultSize records the number of records a view produced.
func RecordViewResultSize(view string, n int) {
	globalManager.viewResultSize.WithLabelValues(view).Observe(float64(n))
}

// RecordMemoHit counts a view served from the memo.
func RecordMemoHit(view string) {
	globalManager.memoHits.WithLabelValues(view).Inc()
}

// RecordMemoMiss counts a view that had to be recomputed.
func RecordMemoMiss(view string) {
	globalManager.memoMisses.WithLabelValues(view).Inc()
}

// RecordChartBytes records the size of a rendered chart.
func RecordChartBytes(n int) {
	globalManager.chartBytes.Observe(float64(n))
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before any handler reads GetRegistry.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(registry)}, opts...)...)
	customRegistry = registry
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
