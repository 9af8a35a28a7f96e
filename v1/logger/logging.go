package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DebugCtx logs a debug message with optional structured fields.
func (l *Logger) DebugCtx(msg string, ctx context.Context, fields map[string]interface{}) {
	l.Zap.Debug(msg, l.zapFields(ctx, nil, fields)...)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(msg string, ctx context.Context, fields map[string]interface{}) {
	l.Zap.Info(msg, l.zapFields(ctx, nil, fields)...)
}

// Warn logs a warning with optional structured fields.
func (l *Logger) Warn(msg string, ctx context.Context, fields map[string]interface{}) {
	l.Zap.Warn(msg, l.zapFields(ctx, nil, fields)...)
}

// Error logs an error. The error value is attached as the "error" field.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.Zap.Error(msg, l.zapFields(nil, err, fields)...)
}

// zapFields flattens the field map, the error, and — when tracing is
// enabled — the trace and span IDs of ctx into zap fields.
func (l *Logger) zapFields(ctx context.Context, err error, fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+3)
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	if l.tracingEnabled && ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			out = append(out,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	return out
}
