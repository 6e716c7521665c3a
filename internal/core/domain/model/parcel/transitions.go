package parcel

import "parceltrack/internal/core/domain/model/actor"

// transitionRule describes one row of the canonical transition table:
// the target status, the only role allowed to trigger it, and whether the
// acting SENDER/RECEIVER must additionally be the one bound to the parcel.
type transitionRule struct {
	to   Status
	role actor.Role

	// mustBeSender requires the actor to be the parcel's owning sender.
	mustBeSender bool

	// mustBeReceiver requires the actor to be the parcel's bound receiver.
	// If no receiver is bound yet, the acting receiver becomes bound.
	mustBeReceiver bool
}

// getTransitionRules returns the single authoritative transition table.
// EventHold and EventResume are not listed here: holds are legal from any
// non-terminal status and resumption targets the status captured when the
// hold was entered, so both are resolved in Parcel.resolveRule.
//
// Any (status, event) pair absent from this table is an invalid transition.
func getTransitionRules() map[Status]map[Event]transitionRule {
	return map[Status]map[Event]transitionRule{
		StatusRequested: {
			EventApprove: {to: StatusApproved, role: actor.RoleReceiver, mustBeReceiver: true},
			EventDecline: {to: StatusDeclined, role: actor.RoleReceiver, mustBeReceiver: true},
			EventCancel:  {to: StatusCancelled, role: actor.RoleSender, mustBeSender: true},
		},
		StatusApproved: {
			EventPickUp: {to: StatusPickedUp, role: actor.RoleAdmin},
			EventCancel: {to: StatusCancelled, role: actor.RoleSender, mustBeSender: true},
		},
		StatusPickedUp: {
			EventStartTransit: {to: StatusInTransit, role: actor.RoleAdmin},
		},
		StatusInTransit: {
			EventDeliver: {to: StatusDelivered, role: actor.RoleAdmin},
			EventReturn:  {to: StatusReturned, role: actor.RoleAdmin},
		},
	}
}
