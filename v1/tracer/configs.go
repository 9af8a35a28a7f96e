package tracer

// Config holds settings for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies this service in trace backends.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// Endpoint of the OTLP HTTP collector, host:port without scheme,
	// e.g. "localhost:4318".
	Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Insecure disables TLS towards the collector. Common for local and
	// in-cluster collectors.
	Insecure bool `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`

	// SampleRatio is the fraction of traces to sample, in [0, 1].
	// Zero means always sample.
	SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_TRACES_SAMPLE_RATIO"`
}

// DefaultConfig provides sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Endpoint: "localhost:4318",
		Insecure: true,
	}
}
