package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/utafrali/cartsim/internal/catalog"
	"github.com/utafrali/cartsim/internal/config"
	"github.com/utafrali/cartsim/internal/event"
	"github.com/utafrali/cartsim/internal/handler/cli"
	"github.com/utafrali/cartsim/internal/metrics"
	"github.com/utafrali/cartsim/internal/repository/memory"
	"github.com/utafrali/cartsim/internal/service"
	"github.com/utafrali/cartsim/pkg/tracing"
)

// Version is reported in traces and by --version.
var Version = "0.1.0"

// App wires together all dependencies and runs the simulator.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	shop           *service.Shop
	menu           *cli.Menu
	metrics        *metrics.Metrics
	journal        *event.Journal
	shutdownTracer func(context.Context) error
}

// NewApp creates an application bound to the process's stdin and stdout.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	return NewAppWithIO(cfg, logger, os.Stdin, os.Stdout)
}

// NewAppWithIO creates an application that reads answers from in and
// writes the menus to out.
func NewAppWithIO(cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing(Version))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	logger.Debug("tracer initialized",
		slog.Bool("enabled", cfg.TracingEnabled),
		slog.String("exporter", cfg.TraceExporter),
	)

	cat, err := catalog.New(catalog.DefaultProducts()...)
	if err != nil {
		_ = shutdownTracer(ctx)
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	// Build the dependency graph.
	journal := event.NewJournal()
	m := metrics.New()
	shop := service.NewShop(
		cat,
		memory.NewOrderRepository(),
		event.NewProducer(journal, logger),
		m,
		logger,
		cfg.MaxQuantity,
	)
	menu := cli.NewMenu(shop, in, out, cfg.Currency, logger)

	return &App{
		cfg:            cfg,
		logger:         logger,
		shop:           shop,
		menu:           menu,
		metrics:        m,
		journal:        journal,
		shutdownTracer: shutdownTracer,
	}, nil
}

// Shop returns the shop the menu drives.
func (a *App) Shop() *service.Shop {
	return a.shop
}

// Run shows the menu until the user exits, input ends, or ctx is
// canceled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting menu",
		slog.Int("products", a.shop.Catalog().Len()),
		slog.Int("max_quantity", a.shop.MaxQuantity()),
	)

	runErr := a.menu.Run(ctx)
	if runErr != nil {
		runErr = fmt.Errorf("menu: %w", runErr)
	} else if ctx.Err() != nil {
		a.logger.Info("shutdown signal received")
	}

	if err := a.Shutdown(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// Shutdown writes the metrics textfile, if configured, and flushes spans.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...",
		slog.Int("events_published", a.journal.Len()),
	)

	var firstErr error
	if a.cfg.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			a.logger.Error("metrics textfile error", slog.String("error", err.Error()))
			firstErr = err
		} else {
			a.logger.Info("metrics written", slog.String("path", a.cfg.MetricsFile))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		if firstErr == nil {
			firstErr = fmt.Errorf("shutdown tracer: %w", err)
		}
	}

	a.logger.Info("application shutdown complete")
	return firstErr
}
