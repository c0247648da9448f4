package service

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "tracker"

// MetricsService owns the Prometheus registry of the tracker. A nil
// *MetricsService is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	cacheDuration   *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
}

// NewMetricsService registers the tracker collectors plus the Go runtime
// and process collectors.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route template and status.",
	}, []string{"method", "path", "status"})
	m.mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "mutations_total",
		Help:      "Successful create, update and delete calls per resource.",
	}, []string{"resource", "operation"})
	m.storeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "store_call_duration_seconds",
		Help:      "Duration of store calls by resource and operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource", "operation"})
	m.cacheDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "cache_operation_duration_seconds",
		Help:      "Latency of cache reads and writes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by result.",
	}, []string{"result"})
	hitRatio := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "cache_hit_ratio",
		Help:      "Ratio of cache hits to cache lookups since start.",
	}, m.hitRatio)

	m.registry.MustRegister(
		m.requestDuration, m.requestTotal, m.mutations, m.storeDuration,
		m.cacheDuration, m.cacheLookups, hitRatio,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// RecordMutation counts a successful write against a resource.
func (m *MetricsService) RecordMutation(resource, operation string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(resource, operation).Inc()
}

// ObserveStoreCall records the duration of one repository call.
func (m *MetricsService) ObserveStoreCall(resource, operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(resource, operation).Observe(duration.Seconds())
}

// RecordCacheOperation records a cache read and whether it hit.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("get").Observe(duration.Seconds())
	if hit {
		m.cacheHits.Add(1)
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheMisses.Add(1)
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveCacheWrite records a cache write.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("set").Observe(duration.Seconds())
}

func (m *MetricsService) hitRatio() float64 {
	hits := m.cacheHits.Load()
	total := hits + m.cacheMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
