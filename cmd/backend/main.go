package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	audioimpl "github.com/foxseedlab/voxbridge/external/audio"
	configloader "github.com/foxseedlab/voxbridge/external/config"
	"github.com/foxseedlab/voxbridge/external/gcp"
	metricsimpl "github.com/foxseedlab/voxbridge/external/metrics"
	"github.com/foxseedlab/voxbridge/external/openaiclient"
	synthesizerimpl "github.com/foxseedlab/voxbridge/external/synthesizer"
	transcriberimpl "github.com/foxseedlab/voxbridge/external/transcriber"
	translatorimpl "github.com/foxseedlab/voxbridge/external/translator"
	webhookimpl "github.com/foxseedlab/voxbridge/external/webhook"
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/foxseedlab/voxbridge/internal/pipeline"
	"github.com/foxseedlab/voxbridge/internal/server"
	"github.com/samber/do/v2"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded",
		"env", cfg.Env,
		"transcriber", cfg.TranscriberProvider,
		"translator", cfg.TranslatorProvider,
		"synthesizer", cfg.SynthesizerProvider)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching http server", "addr", cfg.HTTPAddr)
	runServer(cfg, injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	gcp.RegisterDI(injector)
	openaiclient.RegisterDI(injector)
	audioimpl.RegisterDI(injector)
	metricsimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	translatorimpl.RegisterDI(injector)
	synthesizerimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	pipeline.RegisterDI(injector)
	server.RegisterDI(injector)

	return injector
}

func runServer(cfg *config.Config, injector *do.RootScope) {
	srv, err := do.Invoke[*server.Server](injector)
	if err != nil {
		slog.Error("failed to resolve http server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	done := make(chan struct{})
	go func() {
		slog.Info("startup: entering http serve loop", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
	case <-done:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}
	if report := injector.ShutdownWithContext(ctx); report != nil && !report.Succeed {
		slog.Error("dependency shutdown failed", "error", report.Error())
	}
}
