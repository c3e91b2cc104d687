package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JonMunkholm/orderdesk/internal/config"
	"github.com/JonMunkholm/orderdesk/internal/core"
	"github.com/JonMunkholm/orderdesk/internal/logging"
	"github.com/JonMunkholm/orderdesk/internal/metrics"
	"github.com/JonMunkholm/orderdesk/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"users", len(cfg.Session.InitialUsers()),
		"seed_catalog", cfg.Session.SeedCatalog,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	session := core.NewSession(core.SessionOptions{
		UserNames:   cfg.Session.InitialUsers(),
		SeedCatalog: cfg.Session.SeedCatalog,
		AuditSize:   cfg.Session.AuditSize,
		Logger:      logger,
	})
	stats := session.Stats()
	slog.Info("session ready", "products", stats.Products, "users", stats.Users)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry, cfg.Metrics.Namespace)
	if err := recorder.WatchStores(session); err != nil {
		slog.Error("failed to register store gauges", "error", err)
		os.Exit(1)
	}

	imports := core.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWait)

	server := web.NewServer(web.Options{
		Config:   cfg,
		Session:  session,
		Imports:  imports,
		Metrics:  recorder,
		Gatherer: registry,
	})

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if n := imports.Active(); n > 0 {
			slog.Info("waiting for imports to complete", "active", n, "capacity", imports.Capacity())
		}
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}
