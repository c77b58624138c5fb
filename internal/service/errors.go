package service

import (
	"errors"
	"fmt"

	"booklingo/internal/apperr"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// ValidationError represents a validation error with a field name.
// It carries kind invalid_input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, apperr.ErrInvalidInput) and apperr.KindOf see the kind.
func (e *ValidationError) Unwrap() error {
	return apperr.ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
