package logger

// Level selects the minimum severity that gets emitted.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config holds logger settings.
type Config struct {
	// Level is the minimum log level. Defaults to info.
	Level Level `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableTracing extracts trace and span IDs from the context passed to
	// the logging methods and attaches them to the entry.
	EnableTracing bool `yaml:"enable_tracing" env:"LOG_ENABLE_TRACING"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Level: Info,
	}
}
