package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/db"
	"ise-marketing/propdesk/internal/models/dtos/responses"
)

// HealthCheckHandler handles GET /healthCheck. It pings the database and,
// when configured, the cache backend.
func HealthCheckHandler(store *db.Store, cache common.CacheInterface, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		services := make(map[string]responses.ServiceStatus)

		// Check database
		dbStatus := "ok"
		dbDetails := store.Driver + " connected"
		if err := store.Ping(ctx); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services[store.Driver] = responses.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		// Check cache
		if cache != nil {
			cacheStatus := "ok"
			cacheDetails := "Cache reachable"
			if err := cache.Ping(ctx); err != nil {
				cacheStatus = "down"
				cacheDetails = err.Error()
			}
			services["cache"] = responses.ServiceStatus{
				Status:  cacheStatus,
				Details: cacheDetails,
			}
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := responses.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince.UTC(),
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		if overallStatus != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
