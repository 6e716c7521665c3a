// Package user provides the read-side User entity consumed by the admin
// directory listing. Account management (registration, blocking, deletion)
// is owned by the external identity provider; this package only models what
// the directory needs to show.
package user

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the RestoreUser factory method.
var ErrUserIsNotConstructed = errors.New("User must be created via RestoreUser constructor")

// User is a read-only projection of a registered account.
type User struct {
	id          kernel.UUID
	displayName string
	email       string
	role        actor.Role
	createdAt   time.Time

	isConstructed bool
}

// RestoreUser reconstructs a User from persistent storage. There is no New
// constructor: accounts are created by the identity provider, never here.
func RestoreUser(id kernel.UUID, displayName, email string, role actor.Role, createdAt time.Time) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if displayName == "" {
		return nil, errs.NewValueIsRequiredError("displayName")
	}
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &User{
		id:            id,
		displayName:   displayName,
		email:         email,
		role:          role,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the User was created through RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// DisplayName returns the user's human-readable name.
func (u *User) DisplayName() string {
	return u.displayName
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's authorization role.
func (u *User) Role() actor.Role {
	return u.role
}

// CreatedAt returns when the account was registered.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}
