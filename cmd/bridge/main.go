package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vipinshyam/math-tools-bridge/internal/bridge"
	"github.com/vipinshyam/math-tools-bridge/internal/config"
	"github.com/vipinshyam/math-tools-bridge/internal/observability"
	"github.com/vipinshyam/math-tools-bridge/internal/server"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {

	ctx := context.Background()

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	// Logger
	err := observability.InitLogger()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// OTLP log export
	logShutdown, err := observability.InitLogging(ctx)
	if err != nil {
		panic(err)
	}
	defer logShutdown(ctx)

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		panic(err)
	}
	defer traceShutdown(ctx)

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(ctx)

	// Configuration, resolved once and threaded explicitly from here on.
	configPath := os.Getenv("MATHTOOLS_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		observability.Logger.Fatal("resolving configuration", zap.Error(err))
	}

	// Bridge registries. The HTTP client is shared across reloads and owns
	// timeout and pooling policy for all upstream calls.
	manager := bridge.NewManager(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err := manager.Start(cfg); err != nil {
		observability.Logger.Fatal("starting bridge", zap.Error(err))
	}

	// Options changes trigger a full reload rather than in-place mutation.
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	err = config.Watch(watchCtx, configPath, observability.Logger, func() {
		next, err := config.Load(configPath)
		if err != nil {
			observability.Logger.Error("reload skipped, configuration invalid", zap.Error(err))
			return
		}
		manager.Reload(next)
		observability.Logger.Info("bridge reloaded", zap.String("base_url", next.BaseURL))
	})
	if err != nil {
		observability.Logger.Warn("config watching unavailable", zap.Error(err))
	}

	// Router
	router := server.NewRouter(manager)

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("bridge started",
			zap.String("listen", cfg.Listen),
			zap.String("base_url", cfg.BaseURL),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	waitForShutdown(srv)
}

func waitForShutdown(srv *http.Server) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv.Shutdown(ctx)
}
