package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with defined transitions to ensure parcels
// follow the correct delivery workflow.
//
// State transitions:
//
//	Requested ──┬──> Approved ──> PickedUp ──> InTransit ──┬──> Delivered
//	            │        │                                 └──> Returned
//	            ├──> Declined
//	            └──> Cancelled  (also reachable from Approved)
//
//	any non-terminal <──> OnHold  (admin hold / resume, prior status restored)
//
// Delivered, Cancelled, Declined, and Returned are terminal: no outgoing
// transitions exist. The canonical transition table lives in transitions.go;
// UI layers must drive off the engine's answers, never re-derive the table.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRequested is the initial status set at parcel creation.
	// The parcel is waiting for the receiver to approve or decline.
	StatusRequested

	// StatusApproved indicates the receiver accepted the parcel.
	// The parcel is waiting for an admin to mark it picked up.
	StatusApproved

	// StatusDeclined indicates the receiver refused the parcel.
	// This is a terminal state.
	StatusDeclined

	// StatusPickedUp indicates the parcel was collected from the sender.
	StatusPickedUp

	// StatusInTransit indicates the parcel is moving through the network.
	StatusInTransit

	// StatusDelivered indicates the parcel reached the receiver.
	// This is a terminal state.
	StatusDelivered

	// StatusCancelled indicates the sender cancelled before pickup.
	// This is a terminal state.
	StatusCancelled

	// StatusOnHold indicates an admin suspended the parcel. The status held
	// before the hold is captured on the aggregate so an admin can resume.
	StatusOnHold

	// StatusReturned indicates the parcel was sent back from transit.
	// This is a terminal state.
	StatusReturned
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusRequested: "REQUESTED",
		StatusApproved:  "APPROVED",
		StatusDeclined:  "DECLINED",
		StatusPickedUp:  "PICKED_UP",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
		StatusOnHold:    "ON_HOLD",
		StatusReturned:  "RETURNED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusRequested: "REQUESTED",
		StatusApproved:  "APPROVED",
		StatusDeclined:  "DECLINED",
		StatusPickedUp:  "PICKED_UP",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
		StatusOnHold:    "ON_HOLD",
		StatusReturned:  "RETURNED",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status, e.g. "IN_TRANSIT".
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
// Terminal statuses are Delivered, Cancelled, Declined, and Returned.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusDeclined, StatusReturned:
		return true
	default:
		return false
	}
}
