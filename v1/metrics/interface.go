package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides an interface for creating and registering
// application metrics: counters, histograms, and gauges. Consumers build
// their domain metrics on these factories (the vector store's operation
// counter and latency histogram, for example) without depending on the
// concrete registry or HTTP server.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
