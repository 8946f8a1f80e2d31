package routes

import (
	"net/http"
	"time"

	"ise-marketing/propdesk/internal/api"
	"ise-marketing/propdesk/internal/config"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes builds the chi router over already initialised dependencies.
// gatherer backs /metrics and must be the registry deps.Metrics was built on.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, gatherer prometheus.Gatherer, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	if cfg.AppEnv != "production" {
		r.Use(middleware.DebugLogging)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	handlers := api.NewHandlers(deps)
	r.NotFound(handlers.NotFound())
	r.MethodNotAllowed(handlers.MethodNotAllowed())

	logging.Info("Router initialized with metrics and logging middleware")

	// health check and metrics stay outside the rate limiter
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Store, deps.Services.Cache, upSince))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, deps.Metrics)
	RegisterAPIRoutes(r, handlers, limiter)

	return r
}
