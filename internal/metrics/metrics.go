package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's prometheus collectors.
type Metrics struct {
	analyses        *prometheus.CounterVec
	analysisSeconds prometheus.Histogram
	exports         prometheus.Counter
	memoryFailures  *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brigid_analyses_total",
			Help: "Images analyzed, by outcome",
		}, []string{"outcome"}),
		analysisSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "brigid_analysis_duration_seconds",
			Help:    "Time to decode and analyze one image",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brigid_exports_total",
			Help: "Snapshot images exported",
		}),
		memoryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brigid_memory_failures_total",
			Help: "Snapshot memory reads or writes that were absorbed",
		}, []string{"op"}),
	}

	m.registry.MustRegister(m.analyses, m.analysisSeconds, m.exports, m.memoryFailures)
	return m
}

// ObserveAnalysis records one analysis and how long it took.
func (m *Metrics) ObserveAnalysis(outcome string, d time.Duration) {
	m.analyses.WithLabelValues(outcome).Inc()
	m.analysisSeconds.Observe(d.Seconds())
}

// ExportDone counts one exported snapshot.
func (m *Metrics) ExportDone() {
	m.exports.Inc()
}

// MemoryFailure counts one absorbed persistence failure for op.
func (m *Metrics) MemoryFailure(op string) {
	m.memoryFailures.WithLabelValues(op).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in text exposition format, suitable for
// the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
