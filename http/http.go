package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/placefinder"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	placefinder.ECREDENTIAL: http.StatusUnauthorized,
	placefinder.ESEARCH:     http.StatusBadGateway,
	placefinder.EDETAIL:     http.StatusBadGateway,
	placefinder.EREFRESH:    http.StatusBadGateway,
	placefinder.EINVALID:    http.StatusBadRequest,
	placefinder.ENOTFOUND:   http.StatusNotFound,
	placefinder.EPERSIST:    http.StatusInternalServerError,
	placefinder.EINTERNAL:   http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Error writes err as a JSON error response. Internal errors are logged.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message := placefinder.ErrorCode(err), placefinder.ErrorMessage(err)
	if code == placefinder.EINTERNAL {
		logger.ErrorContext(r.Context(), "internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	writeJSON(w, r, ErrorStatusCode(code), &ErrorResponse{Code: code, Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().DebugContext(r.Context(), "write response", "err", err)
	}
}

// NewSlogLogger returns a middleware that logs one line per request with
// method, path, status, duration and the chi request ID.
func NewSlogLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
