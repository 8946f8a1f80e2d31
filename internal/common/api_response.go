package common

import (
	"encoding/json"
	"net/http"
	"time"

	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/models/dtos/responses"
)

// RespondSuccess sends a {success: true, data} envelope.
func RespondSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	writeJSON(w, statusCode, responses.APIResponse[T]{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// RespondError sends a {success: false, error} envelope.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, responses.APIResponse[any]{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Error:     message,
	})
}

// writeJSON marshals body and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}
