package api

import (
	"net/http"
)

// RevenueReport handles GET /api/revenue. The report is recomputed on every
// request from the current property list.
func (h *Handlers) RevenueReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.deps.Services.Revenue.Report(r.Context())
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, report)
	}
}

// PortfolioSummary handles GET /api/portfolio/summary
func (h *Handlers) PortfolioSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.deps.Services.Properties.Portfolio(r.Context())
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, summary)
	}
}
