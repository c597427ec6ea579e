package config

import (
	"fmt"

	pkgconfig "github.com/utafrali/cartsim/pkg/config"
	"github.com/utafrali/cartsim/pkg/logger"
	"github.com/utafrali/cartsim/pkg/tracing"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "CARTSIM_"

// ServiceName identifies the program in logs, traces and events.
const ServiceName = "cartsim"

// Config holds all configuration for the simulator.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
	// Empty means stderr; stdout belongs to the menu.
	LogFile string `env:"LOG_FILE" envDefault:""`

	// Shop
	Currency    string `env:"CURRENCY" envDefault:"Php"`
	MaxQuantity int    `env:"MAX_QUANTITY" envDefault:"100"`

	// Prometheus textfile written on exit; empty disables it.
	MetricsFile string `env:"METRICS_FILE" envDefault:""`

	// OpenTelemetry
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TraceExporter   string  `env:"TRACE_EXPORTER" envDefault:"none"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from CARTSIM_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadWithPrefix(cfg, EnvPrefix); err != nil {
		return nil, fmt.Errorf("load cartsim config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants. Call it again after applying
// command-line overrides.
func (c *Config) Validate() error {
	if c.MaxQuantity < 1 {
		return fmt.Errorf("CARTSIM_MAX_QUANTITY must be at least 1, got %d", c.MaxQuantity)
	}
	if !logger.IsKnownLevel(c.LogLevel) {
		return fmt.Errorf("CARTSIM_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if c.Currency == "" {
		return fmt.Errorf("CARTSIM_CURRENCY is required")
	}
	if !tracing.IsKnownExporter(c.TraceExporter) {
		return fmt.Errorf("CARTSIM_TRACE_EXPORTER must be %q or %q, got %q",
			tracing.ExporterNone, tracing.ExporterOTLP, c.TraceExporter)
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1.0 {
		return fmt.Errorf("CARTSIM_TRACE_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.TraceSampleRate)
	}
	return nil
}

// Tracing returns the tracer settings derived from c.
func (c *Config) Tracing(version string) tracing.Config {
	tc := tracing.DefaultConfig(ServiceName)
	tc.ServiceVersion = version
	tc.Environment = c.Environment
	tc.Enabled = c.TracingEnabled
	tc.Exporter = c.TraceExporter
	tc.OTLPEndpoint = c.OTLPEndpoint
	tc.SampleRate = c.TraceSampleRate
	return tc
}
