// Package metrics provides Prometheus metrics for the weekendcup scoreboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Snapshot metrics - store rebuild timings
	snapshotRebuildDuration prometheus.Histogram
	snapshotCount           prometheus.Counter
	storeErrors             prometheus.Counter

	// Engine metrics - derived-output queries
	leaderboardQueries prometheus.Counter
	chartQueries       prometheus.Counter

	// Directory gauges
	playersTracked  prometheus.Gauge
	teamsTracked    prometheus.Gauge
	eventsCompleted prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Auth metrics
	loginFailures prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "weekendcup",
		subsystem:        "scoreboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.snapshotRebuildDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuild_duration_seconds",
		Help:      "Time spent rebuilding a raw-record snapshot from the store.",
		Buckets:   m.histogramBuckets,
	})
	m.snapshotCount = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_total",
		Help:      "Total snapshots produced by the store.",
	})
	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total store read/write failures.",
	})
	m.leaderboardQueries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_queries_total",
		Help:      "Total leaderboard computations served.",
	})
	m.chartQueries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_queries_total",
		Help:      "Total progression chart computations served.",
	})
	m.playersTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_tracked",
		Help:      "Players currently in the directory.",
	})
	m.teamsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_tracked",
		Help:      "Golf teams currently registered.",
	})
	m.eventsCompleted = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_completed",
		Help:      "Event keys currently flagged completed.",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
	m.loginFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "login_failures_total",
		Help:      "Failed admin login attempts.",
	})
}

// GetRegistry returns the registry backing the global manager, for serving
// via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordSnapshotRebuild observes one snapshot rebuild.
func RecordSnapshotRebuild(d time.Duration) {
	globalManager.snapshotCount.Inc()
	globalManager.snapshotRebuildDuration.Observe(d.Seconds())
}

// RecordStoreError counts one store failure.
func RecordStoreError() { globalManager.storeErrors.Inc() }

// RecordLeaderboardQuery counts one leaderboard computation.
func RecordLeaderboardQuery() { globalManager.leaderboardQueries.Inc() }

// RecordChartQuery counts one progression chart computation.
func RecordChartQuery() { globalManager.chartQueries.Inc() }

// RecordLoginFailure counts one rejected login.
func RecordLoginFailure() { globalManager.loginFailures.Inc() }

// RecordHTTPRequest counts one handled request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request's latency.
func RecordHTTPRequestDuration(endpoint, method string, d time.Duration) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}

// UpdatePlayersTracked sets the directory size gauge.
func UpdatePlayersTracked(n int) { globalManager.playersTracked.Set(float64(n)) }

// UpdateTeamsTracked sets the registered team gauge.
func UpdateTeamsTracked(n int) { globalManager.teamsTracked.Set(float64(n)) }

// UpdateEventsCompleted sets the completed-events gauge.
func UpdateEventsCompleted(n int) { globalManager.eventsCompleted.Set(float64(n)) }
