package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"ise-marketing/propdesk/internal/api"
	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/config"
	"ise-marketing/propdesk/internal/db"
	"ise-marketing/propdesk/internal/jobs"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	if err := cfg.Validate(); err != nil {
		logging.Fatal("Invalid configuration", "error", err.Error())
	}

	logging.Info("Propdesk starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"cache_backend", cfg.CacheBackend,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("Server exited with error", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	dsn := cfg.SQLitePath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.PostgresDSN()
	}

	store, err := db.Open(ctx, db.Options{
		Driver:     cfg.DBDriver,
		DSN:        dsn,
		MaxOpen:    25,
		MaxIdle:    5,
		MaxRetries: 5,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.AutoMigrate(ctx); err != nil {
		return err
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	if err := store.Instrument(metricsReg); err != nil {
		return err
	}

	cache, err := common.NewCache(cfg.CacheBackend, cfg.CacheTTL, cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	deps, err := api.InitDependencies(store, cache, cfg.CacheTTL, metricsReg)
	if err != nil {
		return err
	}

	upSince := time.Now()
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.RegisterRoutes(cfg, deps, prometheus.DefaultGatherer, upSince),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	jobs.InitializeJobs(gctx, g, deps.Services.Revenue, deps.Services.Audit, metricsReg, cfg.AuditInterval)

	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
