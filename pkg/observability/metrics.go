// Package observability provides Prometheus metrics for the dashboard backend.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "rate_atlas"

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Fetch metrics
	SeriesFetches      *prometheus.CounterVec
	SeriesFetchLatency *prometheus.HistogramVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Analysis metrics
	ViewsComputed      *prometheus.CounterVec
	SeriesUnavailable  *prometheus.CounterVec
	NoCyclesDetected   prometheus.Counter
	CyclesDetected     prometheus.Gauge
	LastSuccessfulView prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		SeriesFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "series_fetches_total",
			Help:      "Total number of series fetched from the provider",
		}, []string{"series", "result"}),
		SeriesFetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "series_fetch_duration_seconds",
			Help:      "Provider fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"series"}),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of series served from cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of series not found in cache or expired",
		}),

		ViewsComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "views_computed_total",
			Help:      "Total number of dashboard views computed",
		}, []string{"view"}),
		SeriesUnavailable: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "series_unavailable_total",
			Help:      "Total number of series skipped because they could not be loaded",
		}, []string{"series"}),
		NoCyclesDetected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "no_cycles_total",
			Help:      "Total number of runs that found no rate-cut cycle",
		}),
		CyclesDetected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "cycles_detected",
			Help:      "Number of cycle starts found by the last detection",
		}),
		LastSuccessfulView: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "last_successful_view_timestamp",
			Help:      "Unix timestamp of the last computed view",
		}),
	}
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
