package api

import (
	"errors"
	"net/http"

	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/constants"
	"ise-marketing/propdesk/internal/db/repositories"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/middleware"
	"ise-marketing/propdesk/internal/revenue"
	"ise-marketing/propdesk/internal/services"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	common.RespondSuccess(w, statusCode, data)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	common.RespondError(w, statusCode, message)
}

// respondWithServiceError maps service and repository errors to status codes.
// Anything unrecognised is logged and reported as a 500.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrInvalidID):
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidPropertyID)
	case errors.Is(err, repositories.ErrPropertyNotFound):
		respondWithError(w, http.StatusNotFound, constants.MsgPropertyNotFound)
	case errors.Is(err, repositories.ErrDuplicateName):
		respondWithError(w, http.StatusConflict, constants.MsgDuplicateProperty)
	case errors.Is(err, revenue.ErrMalformedPayload):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		logging.WithRequest(middleware.RequestIDFromContext(r.Context()), r.Method, r.URL.Path).
			Errorw("Request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, constants.MsgInternalError)
	}
}
