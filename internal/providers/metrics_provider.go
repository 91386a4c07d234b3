package providers

import (
	"time"
	"weatherd/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveUpstreamDuration(endpoint string, outcome string, duration time.Duration)
	IncQueriesTotal(outcome string)
	IncStaleResults()
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	upstreamDuration *prometheus.HistogramVec
	queriesTotal     *prometheus.CounterVec
	staleResults     prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveUpstreamDuration(endpoint string, outcome string, duration time.Duration) {
	m.upstreamDuration.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncQueriesTotal(outcome string) {
	m.queriesTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncStaleResults() {
	m.staleResults.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "weatherd_cache_hits_total",
			Help: "Total number of rendered state cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "weatherd_cache_misses_total",
			Help: "Total number of rendered state cache misses",
		}),

		upstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherd_upstream_duration_seconds",
			Help:    "Duration of OpenWeatherMap calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),

		queriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherd_queries_total",
			Help: "Total number of completed city queries by outcome",
		}, []string{"outcome"}),

		staleResults: promauto.NewCounter(prometheus.CounterOpts{
			Name: "weatherd_stale_results_total",
			Help: "Query results discarded because a newer query was issued",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                            {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)            {}
func (n *noopMetrics) IncCacheHits()                                               {}
func (n *noopMetrics) IncCacheMisses()                                             {}
func (n *noopMetrics) ObserveUpstreamDuration(_ string, _ string, _ time.Duration) {}
func (n *noopMetrics) IncQueriesTotal(_ string)                                    {}
func (n *noopMetrics) IncStaleResults()                                            {}
