package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/connectors/v1/logger"
)

// Tracer wraps the OpenTelemetry tracer provider. It registers itself as the
// global provider so instrumented libraries pick it up automatically.
type Tracer struct {
	tracer *sdktrace.TracerProvider
}

// NewClient initializes the OTLP HTTP exporter and the tracer provider.
//
// The provider is installed globally together with the W3C trace context and
// baggage propagators, so spans started anywhere in the process are exported.
func NewClient(cfg Config, log *logger.Logger) (*Tracer, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("tracer: failed to create OTLP exporter: %w", err)
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracer: failed to build resource: %w", err)
	}

	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio > 0 && cfg.SampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if log != nil {
		log.Info("tracer initialized", nil, map[string]interface{}{
			"endpoint": cfg.Endpoint,
			"service":  cfg.ServiceName,
		})
	}

	return &Tracer{tracer: provider}, nil
}

// Tracer returns a named trace.Tracer from the managed provider.
func (t *Tracer) Tracer(name string) trace.Tracer {
	return t.tracer.Tracer(name)
}

// StartSpan starts a span on the managed provider.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.tracer.Tracer("connectors").Start(ctx, name)
}
