package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/beitrag-dev/beitrag/pkg/api"
)

// The two route families use different error envelopes on the wire: the
// auth and profile endpoints reply with {"error": ...}, the post
// endpoints with {"message": ...}. Both shapes are kept as-is so existing
// clients do not break.

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// HTTPStatusFromError maps an api.Error kind to the corresponding HTTP
// status code.
func HTTPStatusFromError(err *api.Error) int {
	switch err.Kind {
	case api.ErrorKindValidation:
		return http.StatusBadRequest
	case api.ErrorKindUnauthorized:
		return http.StatusUnauthorized
	case api.ErrorKindForbidden:
		return http.StatusForbidden
	case api.ErrorKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v with the given status. Encoding failures after the
// header is written can only be logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeError writes err in the {"error": ...} envelope. Unexpected errors
// are logged with detail and surfaced as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		slog.Error("internal error", "error", err)
		apiErr = api.NewServerError("Internal server error")
	}
	writeJSON(w, HTTPStatusFromError(apiErr), errorBody{Error: apiErr.Message})
}

// writeMessageError writes err in the {"message": ...} envelope used by
// the post endpoints.
func writeMessageError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		slog.Error("internal error", "error", err)
		apiErr = api.NewServerError("Internal server error")
	}
	writeJSON(w, HTTPStatusFromError(apiErr), messageBody{Message: apiErr.Message})
}
