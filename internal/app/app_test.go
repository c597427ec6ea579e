package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/cartsim/internal/config"
	"github.com/utafrali/cartsim/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		LogLevel:        "error",
		Currency:        "Php",
		MaxQuantity:     100,
		TraceExporter:   "none",
		TraceSampleRate: 1.0,
	}
}

func TestApp_RunScriptAndWriteMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "cartsim.prom")

	in := strings.NewReader(strings.Join([]string{
		"1", "Juan", "juan@example.com",
		"2", "juan@example.com",
		"2", "ABC", "2",
		"5", "y",
		"6",
		"4",
	}, "\n") + "\n")
	var out bytes.Buffer

	application, err := NewAppWithIO(cfg, logger.Discard(), in, &out)
	require.NoError(t, err)

	require.NoError(t, application.Run(context.Background()))

	assert.Contains(t, out.String(), "Order placed successfully!\n")
	assert.True(t, strings.HasSuffix(out.String(), "Exiting the application. Goodbye!\n"))

	raw, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "cartsim_orders_placed_total 1")
	assert.Contains(t, string(raw), `cartsim_cart_items_added_total{product_id="ABC"} 2`)

	history, err := application.Shop().OrderHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestApp_NoMetricsFile(t *testing.T) {
	var out bytes.Buffer
	var logs bytes.Buffer

	application, err := NewAppWithIO(testConfig(), logger.NewWithWriter("cartsim", "info", &logs), strings.NewReader(""), &out)
	require.NoError(t, err)

	require.NoError(t, application.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
	assert.Contains(t, logs.String(), "application shutdown complete")
	assert.NotContains(t, logs.String(), "metrics written")
}

func TestApp_MetricsFileError(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "missing", "cartsim.prom")

	application, err := NewAppWithIO(cfg, logger.Discard(), strings.NewReader("4\n"), &bytes.Buffer{})
	require.NoError(t, err)

	err = application.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics textfile")
}

func TestApp_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	application, err := NewAppWithIO(testConfig(), logger.Discard(), strings.NewReader("4\n"), &out)
	require.NoError(t, err)

	require.NoError(t, application.Run(ctx))
	assert.Empty(t, out.String())
}

func TestNewApp_UnknownExporter(t *testing.T) {
	cfg := testConfig()
	cfg.TracingEnabled = true
	cfg.TraceExporter = "zipkin"

	_, err := NewAppWithIO(cfg, logger.Discard(), strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init tracer")
}
