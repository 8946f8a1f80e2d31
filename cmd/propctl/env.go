package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"ise-marketing/propdesk/internal/api"
	"ise-marketing/propdesk/internal/config"
	"ise-marketing/propdesk/internal/db"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
)

// openDeps connects to the configured store and wires the services. The CLI
// runs without a cache so every command sees the database directly.
func openDeps(ctx context.Context) (*api.Dependencies, func(), error) {
	cfg := config.Load()
	if err := logging.Init(cfg.AppEnv); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	dsn := cfg.SQLitePath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.PostgresDSN()
	}
	store, err := db.Open(ctx, db.Options{Driver: cfg.DBDriver, DSN: dsn, MaxRetries: 3})
	if err != nil {
		return nil, nil, err
	}
	if err := store.AutoMigrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	deps, err := api.InitDependencies(store, nil, 0, metrics.NewMetricsRegistry(prometheus.NewRegistry()))
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to initialise services: %w", err)
	}
	return deps, func() { _ = store.Close() }, nil
}
