package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"booklingo/internal/apperr"
	"booklingo/internal/contextutil"
	"booklingo/internal/service"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
	// Kind is the error kind, e.g. "invalid_input" or "not_found".
	Kind string `json:"kind,omitempty"`
}

// handleServiceError maps service errors to HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	if errors.Is(err, service.ErrFileTooLarge) {
		logger.WarnContext(ctx, "upload rejected", "error", err)
		writeError(w, http.StatusRequestEntityTooLarge, "File too large", string(apperr.KindInvalidInput))
		return
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "validation failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()), string(apperr.KindInvalidInput))
		return
	}

	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindInvalidInput, apperr.KindUnsupportedFormat:
		logger.WarnContext(ctx, "bad request", "error", err)
		writeError(w, http.StatusBadRequest, errorMessage(err), string(kind))
	case apperr.KindNotFound:
		writeError(w, http.StatusNotFound, "Resource not found", string(kind))
	default:
		logger.ErrorContext(ctx, "service error", "error", err, "kind", string(kind))
		writeError(w, http.StatusInternalServerError, defaultMsg, string(kind))
	}
}

// errorMessage returns the cause of an *apperr.Error without the op prefix.
func errorMessage(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Kind:  kind,
	})
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, ctx context.Context, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
