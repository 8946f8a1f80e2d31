package routes

import (
	"ise-marketing/propdesk/internal/api"
	"ise-marketing/propdesk/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers the /api routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter) {
	r.Route("/api", func(a chi.Router) {
		a.Use(limiter.Middleware)

		a.Route("/properties", func(p chi.Router) {
			p.Get("/", handlers.ListProperties())
			p.Post("/", handlers.CreateProperty())

			// static segments are matched before {id}
			p.Get("/audit", handlers.PropertyAudit())
			p.Post("/migrate-contacts", handlers.MigrateContacts())

			p.Route("/{id}", func(item chi.Router) {
				item.Get("/", handlers.GetProperty())
				item.Put("/", handlers.UpdateProperty())
				item.Delete("/", handlers.DeleteProperty())
				item.Get("/status", handlers.PropertyStatus())
			})
		})

		a.Get("/revenue", handlers.RevenueReport())
		a.Get("/portfolio/summary", handlers.PortfolioSummary())
	})
}
