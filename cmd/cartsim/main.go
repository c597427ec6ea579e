package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/utafrali/cartsim/internal/app"
	"github.com/utafrali/cartsim/internal/config"
	"github.com/utafrali/cartsim/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel    string
		logFile     string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:           "cartsim",
		Short:         "Interactive shopping cart simulator",
		Long:          "cartsim runs a menu-driven shop on the terminal: register, log in, fill a cart and place orders.",
		Version:       app.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Load configuration from environment variables.
			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load config", slog.String("error", err.Error()))
				return err
			}

			// Flags override the environment.
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			if cmd.Flags().Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}
			if err := cfg.Validate(); err != nil {
				slog.Error("invalid configuration", slog.String("error", err.Error()))
				return err
			}

			return run(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	return cmd
}

func run(cfg *config.Config, in io.Reader, out io.Writer) error {
	// Initialize structured logger.
	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		slog.Error("failed to open log file", slog.String("error", err.Error()))
		return err
	}
	defer closeLog()

	log := logger.NewWithWriter(config.ServiceName, cfg.LogLevel, logOut)
	log.Info("starting cartsim",
		slog.String("environment", cfg.Environment),
		slog.String("version", app.Version),
	)

	// Create the application with all dependencies wired.
	application, err := app.NewAppWithIO(cfg, log, in, out)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		return err
	}

	// Create a context that is canceled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Run the application. This blocks until the user exits.
	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		return err
	}

	log.Info("cartsim stopped")
	return nil
}

func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
