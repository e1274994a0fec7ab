// Package metrics provides a Prometheus-backed performanceReporter.
// It records frame draw and update latency, the runtime's cache size and
// which rendering path each frame took.
package metrics

import (
	"net/http"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// reporterConfig holds configuration for a Reporter.
type reporterConfig struct {
	namespace string
	registry  *prometheus.Registry
}

// ReporterOption configures a Reporter.
type ReporterOption func(*reporterConfig)

// WithNamespace sets the metric namespace (default "jsil").
func WithNamespace(namespace string) ReporterOption {
	return func(c *reporterConfig) {
		if namespace != "" {
			c.namespace = namespace
		}
	}
}

// WithRegistry registers the collectors in reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) ReporterOption {
	return func(c *reporterConfig) {
		c.registry = reg
	}
}

// Reporter implements ports.PerformanceReporter with Prometheus collectors.
type Reporter struct {
	registry *prometheus.Registry

	drawLatency   prometheus.Histogram
	updateLatency prometheus.Histogram
	cacheSize     prometheus.Gauge
	frames        *prometheus.CounterVec
}

var _ ports.PerformanceReporter = (*Reporter)(nil)

// NewReporter creates a reporter and registers its collectors.
func NewReporter(opts ...ReporterOption) (*Reporter, error) {
	cfg := reporterConfig{namespace: "jsil"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
	}

	r := &Reporter{registry: cfg.registry}

	r.drawLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: cfg.namespace,
		Subsystem: "frame",
		Name:      "draw_duration_seconds",
		Help:      "Time spent drawing a frame",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10), // 0.5ms to ~250ms
	})
	r.updateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: cfg.namespace,
		Subsystem: "frame",
		Name:      "update_duration_seconds",
		Help:      "Time spent updating state for a frame",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
	})
	r.cacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: cfg.namespace,
		Subsystem: "runtime",
		Name:      "cache_size",
		Help:      "Cache size reported with the latest frame",
	})
	r.frames = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Subsystem: "frame",
		Name:      "total",
		Help:      "Frames reported, by rendering path",
	}, []string{"path"})

	for _, c := range []prometheus.Collector{r.drawLatency, r.updateLatency, r.cacheSize, r.frames} {
		if err := cfg.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Report implements ports.PerformanceReporter.
func (r *Reporter) Report(draw, update time.Duration, cacheSize int, isGPUPath bool) {
	r.drawLatency.Observe(draw.Seconds())
	r.updateLatency.Observe(update.Seconds())
	r.cacheSize.Set(float64(cacheSize))

	path := "cpu"
	if isGPUPath {
		path = "gpu"
	}
	r.frames.WithLabelValues(path).Inc()
}

// Registry returns the registry holding the reporter's collectors.
func (r *Reporter) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Reporter) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
