package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/treejer/ranger/backend/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// errorMapping pairs a sentinel with its status and code. Order matters only
// if an error wraps more than one sentinel.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrMalformedHistory, http.StatusConflict, "malformed_history"},
	{domain.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
}

// writeError maps err onto an HTTP status. Unrecognised errors are logged and
// answered with a generic 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeErrorBody(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
		return
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			writeErrorBody(w, m.status, m.code, unwrapMessage(err, m.err))
			return
		}
	}
	slog.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
	writeErrorBody(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// badRequest answers 400 for requests rejected before reaching a service,
// such as unparsable path or query parameters.
func badRequest(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusBadRequest, "bad_request", message)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// unwrapMessage extracts the human-readable part after the sentinel.
// e.g. "service.TreeService.Create: validation error: nursery must be..." → "nursery must be..."
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
