package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"ise-marketing/propdesk/internal/db/repositories"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/revenue"
	"ise-marketing/propdesk/internal/services"
)

func init() {
	logging.SetLogger(zap.NewNop().Sugar())
}

func TestRespondWithServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", &services.ValidationError{Field: "name", Message: "is required"}, http.StatusBadRequest, "name: is required"},
		{"invalid id", services.ErrInvalidID, http.StatusBadRequest, "Invalid property ID format"},
		{"not found", fmt.Errorf("wrapped: %w", repositories.ErrPropertyNotFound), http.StatusNotFound, "Property not found"},
		{"duplicate", repositories.ErrDuplicateName, http.StatusConflict, "A property with this name already exists"},
		{"malformed", fmt.Errorf("%w: data is not a list", revenue.ErrMalformedPayload), http.StatusBadRequest, "malformed property list payload: data is not a list"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondWithServiceError(rr, httptest.NewRequest(http.MethodGet, "/api/properties", nil), tt.err)

			assert.Equal(t, tt.code, rr.Code)
			var body struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}
