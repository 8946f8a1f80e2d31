package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for propdesk
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec
	RateLimitedTotal     prometheus.Counter

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	PropertiesTotal         prometheus.Gauge
	PropertiesIncluded      prometheus.Gauge
	RevenueWarnings         *prometheus.GaugeVec
	CurrentYearRevenue      prometheus.Gauge
	AllocationDuration      prometheus.Histogram
	PropertiesMigratedTotal prometheus.Counter
	JobDuration             *prometheus.HistogramVec
}

// NewMetricsRegistry registers every metric on reg. Pass prometheus.DefaultRegisterer
// in the server and a fresh prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propdesk_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propdesk_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "propdesk_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "propdesk_http_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),

		// Database Metrics
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propdesk_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propdesk_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propdesk_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propdesk_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		PropertiesTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "propdesk_properties_total",
				Help: "Properties seen by the last revenue allocation",
			},
		),
		PropertiesIncluded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "propdesk_properties_included",
				Help: "Properties contributing revenue in the last allocation",
			},
		),
		RevenueWarnings: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "propdesk_revenue_warnings",
				Help: "Data-quality warnings raised by the last allocation, by kind",
			},
			[]string{"kind"},
		),
		CurrentYearRevenue: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "propdesk_revenue_current_year",
				Help: "Projected commission revenue for the current calendar year",
			},
		),
		AllocationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "propdesk_revenue_allocation_duration_seconds",
				Help:    "Time spent allocating revenue across years",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),
		PropertiesMigratedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "propdesk_properties_migrated_total",
				Help: "Properties rewritten from the legacy contact/end-date shape",
			},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propdesk_job_duration_seconds",
				Help:    "Background job execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"job_name"},
		),
	}
}
