package actor

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Role represents the authorization role of an authenticated actor.
// Every request is performed by exactly one of the three roles; the role
// decides which lifecycle transitions the actor may trigger.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin operates the delivery network: pickup, transit, delivery,
	// returns, holds, and parcel blocking.
	RoleAdmin

	// RoleSender creates parcels and may cancel them before pickup.
	RoleSender

	// RoleReceiver approves or declines parcels addressed to them.
	RoleReceiver
)

// getRoleStrings returns a map of Role values to their wire representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "UNKNOWN",
		RoleAdmin:    "ADMIN",
		RoleSender:   "SENDER",
		RoleReceiver: "RECEIVER",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAdmin:    "ADMIN",
		RoleSender:   "SENDER",
		RoleReceiver: "RECEIVER",
	}
}

// RoleFromString parses the wire representation of a role (as carried in
// authentication token claims). Returns an error for unknown values.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: RoleAdmin, RoleSender, RoleReceiver.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role.
// This method implements the fmt.Stringer interface and is safe to call on
// any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
