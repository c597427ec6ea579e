package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func restoreGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestInitTracer_Disabled(t *testing.T) {
	cfg := DefaultConfig("test-service")

	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_EnabledWithoutExporter(t *testing.T) {
	restoreGlobalProvider(t)

	cfg := DefaultConfig("test-service")
	cfg.Enabled = true

	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)
	defer shutdown(context.Background()) //nolint:errcheck

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "expected *sdktrace.TracerProvider, got %T", otel.GetTracerProvider())

	_, span := Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
}

func TestInitTracer_OTLP(t *testing.T) {
	restoreGlobalProvider(t)

	// Batched export is async, so an unroutable endpoint still initializes.
	cfg := Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		Exporter:       ExporterOTLP,
		OTLPEndpoint:   "127.0.0.1:0",
		SampleRate:     0.5,
		Enabled:        true,
	}

	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)
	if err := shutdown(context.Background()); err != nil {
		t.Logf("shutdown returned (expected due to unreachable endpoint): %v", err)
	}
}

func TestInitTracer_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig("test-service")
	cfg.Enabled = true
	cfg.Exporter = "zipkin"

	_, err := InitTracer(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zipkin")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("my-service")

	assert.Equal(t, "my-service", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, ExporterNone, cfg.Exporter)
	assert.Equal(t, "localhost:4318", cfg.OTLPEndpoint)
}

func TestIsKnownExporter(t *testing.T) {
	assert.True(t, IsKnownExporter("none"))
	assert.True(t, IsKnownExporter("otlp"))
	assert.False(t, IsKnownExporter("jaeger"))
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
}
