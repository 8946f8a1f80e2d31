package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"ise-marketing/propdesk/internal/models/dtos"
)

// ListProperties handles GET /api/properties?search=&status=
func (h *Handlers) ListProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := dtos.PropertyListQuery{
			Search: r.URL.Query().Get("search"),
			Status: r.URL.Query().Get("status"),
		}

		props, err := h.deps.Services.Properties.List(r.Context(), q)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &props)
	}
}

// CreateProperty handles POST /api/properties
func (h *Handlers) CreateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.PropertyRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := h.deps.Services.Properties.Create(r.Context(), req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, created)
	}
}

// GetProperty handles GET /api/properties/{id}
func (h *Handlers) GetProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prop, err := h.deps.Services.Properties.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, prop)
	}
}

// UpdateProperty handles PUT /api/properties/{id}
func (h *Handlers) UpdateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.PropertyRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := h.deps.Services.Properties.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, updated)
	}
}

// DeleteProperty handles DELETE /api/properties/{id}
func (h *Handlers) DeleteProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.deps.Services.Properties.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &struct{}{})
	}
}

// PropertyStatus handles GET /api/properties/{id}/status
func (h *Handlers) PropertyStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.deps.Services.Properties.Status(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, status)
	}
}

// MigrateContacts handles POST /api/properties/migrate-contacts?dryRun=true
func (h *Handlers) MigrateContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dryRun := false
		if raw := r.URL.Query().Get("dryRun"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, fmt.Sprintf("dryRun must be a boolean (got %q)", raw))
				return
			}
			dryRun = v
		}

		report, err := h.deps.Services.Migration.MigrateLegacy(r.Context(), dryRun)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, report)
	}
}

// PropertyAudit handles GET /api/properties/audit
func (h *Handlers) PropertyAudit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.deps.Services.Audit.Audit(r.Context())
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, report)
	}
}
