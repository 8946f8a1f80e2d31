package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ise-marketing/propdesk/internal/constants"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// NotFound answers unknown routes with the JSON error envelope
func (h *Handlers) NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("No route for %s %s", r.Method, r.URL.Path))
	}
}

func (h *Handlers) MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, constants.MsgMethodNotAllowed)
	}
}

// decodeBody reads a JSON request body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", constants.MsgInvalidRequestBody, err))
		return false
	}
	return true
}
