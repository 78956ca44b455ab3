// Package apperr provides standardized domain error types for the application.
// Domain services return these typed errors, and the HTTP layer middleware
// automatically maps them to appropriate HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindSourceUnavailable indicates one external source timed out or failed.
	// Isolated per source: it never aborts a whole scan.
	KindSourceUnavailable
	// KindInvalidInput indicates a malformed candidate field (area, date).
	// The offending candidate is dropped, not the whole batch.
	KindInvalidInput
	// KindNoData indicates every source failed and no fallback is configured.
	// This is the only scan-fatal condition.
	KindNoData
	// KindOracleDegraded indicates the AI scoring oracle misbehaved. It is
	// absorbed by the heuristic fallback and never surfaces to callers.
	KindOracleDegraded
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindBadRequest indicates a malformed or invalid request.
	KindBadRequest
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a domain error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // Operation that failed (optional)
	Err     error       // Underlying error (optional)
	Details interface{} // Additional details for response (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNoData, KindSourceUnavailable, KindOracleDegraded:
		return http.StatusServiceUnavailable
	case KindInvalidInput, KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// Convenience constructors for common error types.

// SourceUnavailable creates an isolated per-source failure error.
func SourceUnavailable(source string, err error) *Error {
	return Wrap(KindSourceUnavailable, "source unavailable: "+source, err)
}

// InvalidInput creates a malformed-candidate error.
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

// NoData creates the scan-fatal all-sources-failed error.
func NoData(message string) *Error {
	return New(KindNoData, message)
}

// OracleDegraded creates an AI-oracle failure error.
func OracleDegraded(err error) *Error {
	return Wrap(KindOracleDegraded, "scoring oracle degraded", err)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Internal creates an internal server error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the error kind from an error anywhere in the chain.
// Returns KindUnknown if no *Error is found.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err carries an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
