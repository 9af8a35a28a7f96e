package qdrant

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/connectors/v1/metrics"
)

// Observer receives a callback after every store operation. Implementations
// must be safe for concurrent use.
type Observer interface {
	// ObserveOperation is called once per operation with its wall-clock
	// start and final error (nil on success).
	ObserveOperation(collection, operation string, start time.Time, err error)
}

// nopObserver is the default when no metrics collector is wired.
type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, time.Time, error) {}

// MetricsObserver exports per-operation counters and latency histograms
// through a MetricsCollector.
type MetricsObserver struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetricsObserver registers the vector store metrics on the given
// collector. One observer can be shared across collections.
func NewMetricsObserver(collector metrics.MetricsCollector) *MetricsObserver {
	return &MetricsObserver{
		operations: collector.CreateCounter(
			"vectorstore_operations_total",
			"Total number of vector store operations",
			[]string{"collection", "operation", "status"},
		),
		duration: collector.CreateHistogram(
			"vectorstore_operation_duration_seconds",
			"Duration of vector store operations in seconds",
			[]string{"collection", "operation"},
			prometheus.DefBuckets,
		),
	}
}

func (o *MetricsObserver) ObserveOperation(collection, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	o.operations.WithLabelValues(collection, operation, status).Inc()
	o.duration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}
