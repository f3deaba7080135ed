package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carparking/internal/config"
	"carparking/internal/logging"
	"carparking/internal/parking"
	"carparking/internal/server"
	"carparking/internal/telemetry"

	"github.com/spf13/pflag"
)

func main() {
	cfg := config.Load()

	pflag.StringVar(&cfg.Mode, "mode", cfg.Mode, "Mode to run: cli, server, or both")
	pflag.StringVar(&cfg.Port, "port", cfg.Port, "Port for HTTP server")
	pflag.Parse()

	logging.Init(logging.Config{
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Output:      logOutput(cfg.Mode),
	})

	if err := cfg.Validate(); err != nil {
		logging.Error(context.Background(), "invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Debug(context.Background(), "configuration loaded",
		"mode", cfg.Mode,
		"port", cfg.Port,
		"otel_endpoint", cfg.OTelEndpoint,
		"read_timeout", cfg.ReadTimeout.String(),
		"write_timeout", cfg.WriteTimeout.String(),
		"idle_timeout", cfg.IdleTimeout.String(),
		"shutdown_timeout", cfg.ShutdownTimeout.String(),
		"metric_export_interval", cfg.MetricInterval.String(),
	)

	tp, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName:    cfg.OTelServiceName,
		Endpoint:       cfg.OTelEndpoint,
		Environment:    cfg.Environment,
		ExportInterval: cfg.MetricInterval,
	})
	if err != nil {
		logging.Error(context.Background(), "failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer shutdownTelemetry(tp)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := parking.NewInstrumentedRegistry(parking.NewLotRegistry(), tp.Tracer(), tp.Meter())
	if err != nil {
		logging.Error(ctx, "failed to create parking registry", "error", err)
		return
	}

	logging.Info(ctx, "starting car parking service", "mode", cfg.Mode, "port", cfg.Port)

	switch cfg.Mode {
	case config.ModeCLI:
		runCLI(ctx, registry, tp)
	case config.ModeServer:
		runServer(ctx, cfg, registry)
	case config.ModeBoth:
		runBoth(ctx, cfg, registry, tp)
	}
}

// logOutput keeps the shell's stdout free of JSON log lines.
func logOutput(mode string) *os.File {
	if mode == config.ModeServer {
		return os.Stdout
	}
	return os.Stderr
}

func runCLI(ctx context.Context, registry *parking.InstrumentedRegistry, tp *telemetry.Provider) {
	parking.NewShell(registry, tp.Tracer(), os.Stdin, os.Stdout).Run(ctx)
}

func runServer(ctx context.Context, cfg *config.Config, registry *parking.InstrumentedRegistry) {
	srv, err := newServer(cfg, registry)
	if err != nil {
		logging.Error(ctx, "failed to create server", "error", err)
		return
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "server error", "error", err)
		}
		return
	case <-ctx.Done():
		logging.Info(context.Background(), "received shutdown signal")
	}

	shutdownServer(srv, cfg.ShutdownTimeout)
}

func runBoth(ctx context.Context, cfg *config.Config, registry *parking.InstrumentedRegistry, tp *telemetry.Provider) {
	srv, err := newServer(cfg, registry)
	if err != nil {
		logging.Error(ctx, "failed to create server", "error", err)
		return
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan struct{})
	go func() {
		defer close(cliDone)
		runCLI(ctx, registry, tp)
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "server error", "error", err)
		}
		return
	case <-cliDone:
		logging.Info(ctx, "CLI exited")
	case <-ctx.Done():
		logging.Info(context.Background(), "received shutdown signal")
	}

	shutdownServer(srv, cfg.ShutdownTimeout)
}

func newServer(cfg *config.Config, registry *parking.InstrumentedRegistry) (*server.Server, error) {
	return server.NewServer(server.Config{
		Port:         cfg.Port,
		ServiceName:  cfg.OTelServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, registry)
}

func shutdownServer(srv *server.Server, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error(ctx, "server shutdown error", "error", err)
	}
}

func shutdownTelemetry(tp *telemetry.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logging.Info(ctx, "shutting down telemetry")
	if err := tp.Shutdown(ctx); err != nil {
		logging.Error(ctx, "error shutting down telemetry", "error", err)
	}
}
