// Package actor models the authenticated identity performing an operation:
// its id, display name, and authorization role. The identity provider adapter
// resolves an Actor per request; the parcel aggregate authorizes transitions
// against it and records it in the status history.
package actor

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is a value object describing who performs an operation.
// It is resolved from the request's authentication context and never persisted
// on its own; status history entries embed a snapshot of it.
type Actor struct {
	id          kernel.UUID
	displayName string
	role        Role

	isConstructed bool
}

// NewActor creates a validated Actor.
// The id must be a constructed UUID, the display name must not be empty,
// and the role must be one of the valid roles.
func NewActor(id kernel.UUID, displayName string, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if displayName == "" {
		return Actor{}, errs.NewValueIsRequiredError("displayName")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		displayName:   displayName,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// DisplayName returns the actor's human-readable name.
func (a Actor) DisplayName() string {
	return a.displayName
}

// Role returns the actor's authorization role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor has the ADMIN role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// IsSender reports whether the actor has the SENDER role.
func (a Actor) IsSender() bool {
	return a.role == RoleSender
}

// IsReceiver reports whether the actor has the RECEIVER role.
func (a Actor) IsReceiver() bool {
	return a.role == RoleReceiver
}
