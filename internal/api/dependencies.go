package api

import (
	"time"

	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/db"
	"ise-marketing/propdesk/internal/db/repositories"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/services"
)

type Repositories struct {
	Properties *repositories.PropertyRepositoryGORM
	Audit      *repositories.AuditRepository
}

type Services struct {
	Cache      common.CacheInterface
	Properties *services.PropertyService
	Revenue    *services.RevenueService
	Migration  *services.MigrationService
	Audit      *services.AuditService
}

type Dependencies struct {
	Store    *db.Store
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services over an already opened
// store. cache may be nil to disable snapshot caching.
func InitDependencies(store *db.Store, cache common.CacheInterface, cacheTTL time.Duration, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Properties: repositories.NewPropertyRepositoryGORM(store.ORM),
		Audit:      repositories.NewAuditRepository(store.SQL),
	}

	propertySvc := services.NewPropertyService(repos.Properties, cache, cacheTTL, metricsReg)

	svcs := &Services{
		Cache:      cache,
		Properties: propertySvc,
		Revenue:    services.NewRevenueService(propertySvc, metricsReg),
		Migration:  services.NewMigrationService(repos.Properties, propertySvc, metricsReg),
		Audit:      services.NewAuditService(repos.Audit),
	}

	return &Dependencies{
		Store:    store,
		Metrics:  metricsReg,
		Repo:     repos,
		Services: svcs,
	}, nil
}
