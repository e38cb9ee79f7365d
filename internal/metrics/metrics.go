package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Charterdesk
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec
	DBConnections   prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	OperatorSearchesTotal  prometheus.Counter
	QueryResultsTotal      prometheus.CounterVec
	ChatContinuationsTotal prometheus.CounterVec
	SyncJobDuration        prometheus.HistogramVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charterdesk_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "charterdesk_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "charterdesk_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charterdesk_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "charterdesk_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),
		DBConnections: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "charterdesk_db_connections",
				Help: "Current number of database connections",
			},
			[]string{"state"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charterdesk_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charterdesk_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		OperatorSearchesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "charterdesk_operator_searches_total",
				Help: "Total operator name resolutions served",
			},
		),
		QueryResultsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charterdesk_query_results_total",
				Help: "Total result entries served by query endpoint",
			},
			[]string{"endpoint"},
		),
		ChatContinuationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charterdesk_chat_continuations_total",
				Help: "Continuation tokens issued and redeemed, by outcome",
			},
			[]string{"outcome"},
		),
		SyncJobDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "charterdesk_sync_job_duration_seconds",
				Help:    "Sync job execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job_name"},
		),
	}
}
