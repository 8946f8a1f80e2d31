package middleware

import (
	"net/http"
	"runtime/debug"

	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/constants"
	"ise-marketing/propdesk/internal/logging"
)

// Recoverer turns a handler panic into a JSON 500 and logs the stack.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.WithRequest(RequestIDFromContext(r.Context()), r.Method, r.URL.Path).Errorw(
					"handler panic",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				common.RespondError(w, http.StatusInternalServerError, constants.MsgInternalError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// DebugLogging dumps request headers at debug level. Only mounted outside production.
func DebugLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.WithRequest(RequestIDFromContext(r.Context()), r.Method, r.URL.Path)
		for name, vals := range r.Header {
			if name == "Authorization" || name == "Cookie" {
				continue
			}
			log.Debugw("request header", "name", name, "values", vals)
		}
		next.ServeHTTP(w, r)
	})
}
