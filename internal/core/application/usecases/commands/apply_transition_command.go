package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrApplyTransitionCommandIsNotConstructed = errors.New(
		"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
	)
)

// ApplyTransitionCommand represents an actor's request to move a parcel
// through one lifecycle event: approve, decline, cancel, pick up, start
// transit, deliver, return, hold, or resume.
//
// The note is free text. It is required to be non-empty for cancel and
// decline, but that rule belongs to the aggregate; the command carries the
// note as-is.
//
// Example:
//
//	cmd, err := NewApplyTransitionCommand(parcelID, admin, parcel.EventPickUp, "")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, locks, publisher)
//	updated, err := handler.Handle(ctx, cmd)
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	by       actor.Actor
	event    parcel.Event
	note     string

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command to apply one lifecycle event.
// Validates the parcel id, the actor, and the event value.
func NewApplyTransitionCommand(
	parcelID kernel.UUID,
	by actor.Actor,
	event parcel.Event,
	note string,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setBy(by),
		cmd.setEvent(event),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyTransitionCommandIsNotConstructed if validation fails.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to transition.
func (c ApplyTransitionCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// By returns the actor requesting the transition.
func (c ApplyTransitionCommand) By() actor.Actor {
	return c.by
}

// Event returns the lifecycle event to apply.
func (c ApplyTransitionCommand) Event() parcel.Event {
	return c.event
}

// Note returns the free-text note to record with the transition.
func (c ApplyTransitionCommand) Note() string {
	return c.note
}

func (c *ApplyTransitionCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ApplyTransitionCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}

func (c *ApplyTransitionCommand) setEvent(event parcel.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	c.event = event
	return nil
}
