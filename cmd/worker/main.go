package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/felixgeelhaar/cadence/internal/app"
	"github.com/felixgeelhaar/cadence/internal/worker"
	"github.com/felixgeelhaar/cadence/pkg/config"
	"github.com/felixgeelhaar/cadence/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.DefaultLogConfig())

	logger.Info("starting cadence worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	} else if cfg.IsDevelopment() {
		logCfg.Level = observability.LogLevelDebug
	}
	logger = observability.NewLogger(logCfg)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	var store worker.ReportStore
	if container.ReportStore != nil {
		store = container.ReportStore
	}

	recomputer := worker.NewRecomputer(
		container.TaskRepo,
		container.Publisher,
		store,
		container.UserID,
		cfg.RecomputeInterval,
		logger,
	)

	if cfg.WorkerHealthAddr != "" {
		startHealthServer(ctx, cfg, container, recomputer, logger)
	}
	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, logger)
	}

	logger.Info("starting recompute loop",
		"user_id", container.UserID,
		"interval", cfg.RecomputeInterval,
	)
	recomputer.Run(ctx)

	logger.Info("worker stopped")
}

func startHealthServer(ctx context.Context, cfg *config.Config, container *app.Container, recomputer *worker.Recomputer, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		stats := recomputer.GetStats()
		response := map[string]any{
			"status":        "ok",
			"running":       stats.IsRunning,
			"runs":          stats.Runs,
			"failures":      stats.Failures,
			"last_run_at":   stats.LastRunAt,
			"last_error":    stats.LastError,
			"last_error_at": stats.LastErrAt,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pingStorage(checkCtx, container); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ready"})
	})

	srv := &http.Server{
		Addr:              cfg.WorkerHealthAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serve(ctx, srv, "health server", logger)
}

func startMetricsServer(ctx context.Context, addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serve(ctx, srv, "metrics server", logger)
}

func serve(ctx context.Context, srv *http.Server, name string, logger *slog.Logger) {
	go func() {
		logger.Info(name+" starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(name+" error", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn(name+" shutdown error", "error", err)
		}
	}()
}

func pingStorage(ctx context.Context, container *app.Container) error {
	if container.PgPool != nil {
		return container.PgPool.Ping(ctx)
	}
	return container.SQLiteDB.PingContext(ctx)
}
