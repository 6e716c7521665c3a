package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Event names a lifecycle transition request. Which events are legal from
// which status, and which role may trigger them, is decided by the canonical
// transition table in transitions.go.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// EventApprove is the receiver accepting a requested parcel.
	EventApprove

	// EventDecline is the receiver refusing a requested parcel.
	// Requires a non-empty note.
	EventDecline

	// EventCancel is the sender cancelling before pickup.
	// Requires a non-empty note.
	EventCancel

	// EventPickUp is an admin marking the parcel collected from the sender.
	EventPickUp

	// EventStartTransit is an admin marking the parcel as moving.
	EventStartTransit

	// EventDeliver is an admin marking the parcel delivered.
	EventDeliver

	// EventReturn is an admin sending the parcel back from transit.
	EventReturn

	// EventHold is an admin suspending any non-terminal parcel.
	EventHold

	// EventResume is an admin restoring the status held before EventHold.
	EventResume
)

// getEventStrings returns a map of Event values to their names.
func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:      "Unknown",
		EventApprove:      "Approve",
		EventDecline:      "Decline",
		EventCancel:       "Cancel",
		EventPickUp:       "PickUp",
		EventStartTransit: "StartTransit",
		EventDeliver:      "Deliver",
		EventReturn:       "Return",
		EventHold:         "Hold",
		EventResume:       "Resume",
	}
}

// getValidEventStrings returns a map of only valid Event values.
func getValidEventStrings() map[Event]string {
	//nolint:exhaustive // EventUnknown is intentionally excluded as it's invalid
	return map[Event]string{
		EventApprove:      "Approve",
		EventDecline:      "Decline",
		EventCancel:       "Cancel",
		EventPickUp:       "PickUp",
		EventStartTransit: "StartTransit",
		EventDeliver:      "Deliver",
		EventReturn:       "Return",
		EventHold:         "Hold",
		EventResume:       "Resume",
	}
}

// AllEvents returns every valid event, in declaration order.
// Useful for exhaustively driving the transition table in tests.
func AllEvents() []Event {
	return []Event{
		EventApprove,
		EventDecline,
		EventCancel,
		EventPickUp,
		EventStartTransit,
		EventDeliver,
		EventReturn,
		EventHold,
		EventResume,
	}
}

// EventFromString parses an event name, e.g. "Approve".
// Returns an error for unknown values.
func EventFromString(s string) (Event, error) {
	for event, str := range getValidEventStrings() {
		if str == s {
			return event, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("event",
		fmt.Errorf("%q is not a valid event", s))
}

// Validate checks if the Event value is valid.
func (e Event) Validate() error {
	if _, ok := getValidEventStrings()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%d is not a valid event", e))
	}
	return nil
}

// String returns the event name, e.g. "StartTransit".
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "Unknown"
}

// RequiresNote reports whether the event demands a non-empty note.
// Cancellations and declines must carry an explanation.
func (e Event) RequiresNote() bool {
	return e == EventCancel || e == EventDecline
}
