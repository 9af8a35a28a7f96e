// Package metrics provides Prometheus-based monitoring and metrics collection
// functionality for Go applications.
//
// The metrics package is designed to provide a standardized observability
// approach with features such as configurable HTTP endpoints for metrics exposure,
// automatic runtime instrumentation, and integration with the Fx dependency
// injection framework for easy incorporation into Aleph Alpha services.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for creating metrics
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides both *Metrics and MetricsCollector interface for dependency injection
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Integration with go.uber.org/fx for automatic lifecycle management
//   - Automatic registration of Go runtime and process-level metrics
//   - Factories for custom metric registration (counters, gauges, histograms)
//   - A constant service label on every metric for multi-service observability
//   - Graceful startup and shutdown via Fx lifecycle hooks
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/Aleph-Alpha/connectors/v1/metrics"
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		ServiceName:             "vector-store",
//		EnableDefaultCollectors: true,
//	})
//	go m.Server.ListenAndServe()
//
//	operations := m.CreateCounter("operations_total", "Total operations", []string{"status"})
//	operations.WithLabelValues("success").Inc()
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule which provides
// both the concrete type and interface:
//
//	import (
//		"go.uber.org/fx"
//		"github.com/Aleph-Alpha/connectors/v1/metrics"
//		"github.com/Aleph-Alpha/connectors/v1/logger"
//	)
//
//	app := fx.New(
//		logger.FXModule,  // provides the logger used for lifecycle logs
//		metrics.FXModule, // provides *Metrics and MetricsCollector
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{
//				Address:                 ":9090",
//				ServiceName:             "vector-store",
//				EnableDefaultCollectors: true,
//			}
//		}),
//	)
//	app.Run()
//
// Components then take a metrics.MetricsCollector and build their domain
// metrics on it; see the qdrant package's MetricsObserver for the vector
// store's per-operation counter and latency histogram.
//
// # Configuration
//
// The metrics server can be configured via environment variables:
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	SERVICE_NAME=vector-store                  # Adds a service label to all metrics
//
// # Default Collectors
//
// When EnableDefaultCollectors is true, the package automatically registers
// the following collectors:
//   - Go runtime metrics (goroutines, GC stats, heap usage)
//   - Process metrics (CPU time, memory, file descriptors)
//   - Binary build info
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
