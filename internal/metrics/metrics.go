// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Metrics owns a private registry and the application collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	BatchItems   *prometheus.CounterVec
	ModelCalls   *prometheus.CounterVec
	ModelLatency prometheus.Histogram
	CacheLookups *prometheus.CounterVec
}

// New creates and registers the collectors, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route"}),
		BatchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Batch items processed by operation and outcome.",
		}, []string{"kind", "status"}),
		ModelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Language model calls by outcome.",
		}, []string{"outcome"}),
		ModelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_duration_seconds",
			Help:      "Language model call latency.",
			Buckets:   []float64{.25, .5, 1, 2, 5, 10, 20, 40, 80},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Listing cache lookups by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		m.HTTPRequests, m.HTTPDuration, m.BatchItems, m.ModelCalls, m.ModelLatency, m.CacheLookups,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(route, method string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveBatchItem records one batch item outcome.
func (m *Metrics) ObserveBatchItem(kind, status string) {
	m.BatchItems.WithLabelValues(kind, status).Inc()
}

// ObserveModelCall has the signature of llm.Observer.
func (m *Metrics) ObserveModelCall(outcome string, elapsed time.Duration) {
	m.ModelCalls.WithLabelValues(outcome).Inc()
	m.ModelLatency.Observe(elapsed.Seconds())
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
