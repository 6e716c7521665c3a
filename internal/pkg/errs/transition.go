package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel error for status transition attempts
	// that are not present in the canonical transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrParcelBlocked is the sentinel error for operations refused because the
	// parcel carries the blocked flag.
	ErrParcelBlocked = errors.New("parcel is blocked")
)

// InvalidTransitionError indicates that an event is not a legal transition
// from the parcel's current status. It carries both sides of the attempted
// transition so the caller can render a precise message.
// It wraps ErrInvalidTransition so callers can classify it with errors.Is.
type InvalidTransitionError struct {
	FromStatus string
	Event      string
	Cause      error
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// attempted event against the current status.
func NewInvalidTransitionError(fromStatus, event string) *InvalidTransitionError {
	return &InvalidTransitionError{FromStatus: fromStatus, Event: event}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError with an underlying cause.
func NewInvalidTransitionErrorWithCause(fromStatus, event string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{FromStatus: fromStatus, Event: event, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s is not allowed from %s (cause: %s)",
			ErrInvalidTransition, e.Event, e.FromStatus, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidTransition, e.Event, e.FromStatus))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ParcelBlockedError indicates that a lifecycle operation was refused because
// the parcel is blocked by an administrator.
// It wraps ErrParcelBlocked so callers can classify it with errors.Is.
type ParcelBlockedError struct {
	ID    any
	Cause error
}

// NewParcelBlockedError creates a ParcelBlockedError for the given parcel identifier.
func NewParcelBlockedError(id any) *ParcelBlockedError {
	return &ParcelBlockedError{ID: id}
}

// NewParcelBlockedErrorWithCause creates a ParcelBlockedError with an underlying cause.
func NewParcelBlockedErrorWithCause(id any, cause error) *ParcelBlockedError {
	return &ParcelBlockedError{ID: id, Cause: cause}
}

func (e *ParcelBlockedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrParcelBlocked, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrParcelBlocked, e.ID))
}

func (e *ParcelBlockedError) Unwrap() error {
	return ErrParcelBlocked
}
