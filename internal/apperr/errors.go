// Package apperr defines the error taxonomy shared by the ingestion pipeline.
//
// Every failure that reaches the job status surface carries a Kind so pollers
// can distinguish a bad upload from a flaky model backend.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindUnsupportedFormat Kind = "unsupported_format"
	KindConversion        Kind = "conversion"
	KindOracle            Kind = "oracle"
	KindStoreUnavailable  Kind = "store_unavailable"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindCancelled         Kind = "cancelled"
	KindInternal          Kind = "internal"
)

var (
	// ErrUnsupportedFormat is returned when the input file extension is not recognized.
	ErrUnsupportedFormat = &Error{Kind: KindUnsupportedFormat}
	// ErrConversion is returned when the underlying document parser fails.
	ErrConversion = &Error{Kind: KindConversion}
	// ErrOracle is returned when the LLM call fails or returns unparsable output.
	ErrOracle = &Error{Kind: KindOracle}
	// ErrStoreUnavailable is returned when the persistence layer cannot be reached.
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable}
	// ErrInvalidInput is returned when request validation fails.
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrCancelled is returned when a run stops because cancellation was requested.
	ErrCancelled = &Error{Kind: KindCancelled}
)

// Error is a kind-carrying error. Op names the failing operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with an
// empty Kind matches any *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// New returns an error of the given kind wrapping err.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf returns an error of the given kind with a formatted cause.
func Errorf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal if there is none. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
