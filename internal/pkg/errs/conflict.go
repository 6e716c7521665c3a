package errs

import (
	"errors"
	"fmt"
)

// ErrConcurrencyConflict is the sentinel error for lost optimistic-lock races
// and lock-acquisition timeouts. Unlike the other errors in this package it is
// retryable: it signals a benign concurrent-write race, not caller error.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

// ConcurrencyConflictError indicates that a read-modify-write cycle lost a
// race against a concurrent writer, or that the per-parcel lock could not be
// acquired in time. It wraps ErrConcurrencyConflict so callers can classify
// it with errors.Is and decide to retry.
type ConcurrencyConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the given object.
func NewConcurrencyConflictError(paramName string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id}
}

// NewConcurrencyConflictErrorWithCause creates a ConcurrencyConflictError with an underlying cause.
func NewConcurrencyConflictErrorWithCause(paramName string, id any, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrConcurrencyConflict, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrConcurrencyConflict, e.ID))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
