package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is the sentinel error for requests without a resolvable actor.
	ErrUnauthenticated = errors.New("actor is not authenticated")

	// ErrNotAuthorized is the sentinel error for actors lacking the required
	// role or resource ownership for an operation.
	ErrNotAuthorized = errors.New("actor is not authorized")
)

// UnauthenticatedError indicates that no authenticated actor could be resolved
// for the request. It wraps ErrUnauthenticated so callers can classify it with errors.Is.
type UnauthenticatedError struct {
	Cause error
}

// NewUnauthenticatedError creates an UnauthenticatedError without a cause.
func NewUnauthenticatedError() *UnauthenticatedError {
	return &UnauthenticatedError{}
}

// NewUnauthenticatedErrorWithCause creates an UnauthenticatedError with an underlying cause.
func NewUnauthenticatedErrorWithCause(cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (cause: %s)", ErrUnauthenticated, e.Cause))
	}
	return ErrUnauthenticated.Error()
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// NotAuthorizedError indicates that an authenticated actor is not permitted
// to perform an action, either because of its role or because it does not own
// the resource. It wraps ErrNotAuthorized so callers can classify it with errors.Is.
type NotAuthorizedError struct {
	Role   string
	Action string
	Cause  error
}

// NewNotAuthorizedError creates a NotAuthorizedError for the given role and action.
func NewNotAuthorizedError(role, action string) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Action: action}
}

// NewNotAuthorizedErrorWithCause creates a NotAuthorizedError with an underlying cause.
func NewNotAuthorizedErrorWithCause(role, action string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Action: action, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: role %s cannot perform %s (cause: %s)",
			ErrNotAuthorized, e.Role, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: role %s cannot perform %s", ErrNotAuthorized, e.Role, e.Action))
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}
