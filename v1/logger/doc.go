// Package logger provides structured logging functionality for Go applications.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual logging, distributed tracing
// integration, and structured output. It integrates with the fx dependency
// injection framework for easy incorporation into applications.
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warning, Error)
//   - Distributed tracing integration with OpenTelemetry
//   - Automatic trace and span ID extraction from context
//   - JSON output suitable for common log collection systems
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/Aleph-Alpha/connectors/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "search-store",
//		EnableTracing: true,
//	})
//
//	log.Info("collection created", nil, map[string]interface{}{
//		"collection": "documents",
//	})
//
// The underlying zap.Logger is exposed as the Zap field for components that
// take a *zap.Logger directly.
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config {
//	        return logger.DefaultConfig()
//	    }),
//	    // other modules...
//	)
//
// The module registers an OnStop hook that flushes buffered entries on
// shutdown.
package logger
