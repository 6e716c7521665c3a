package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrSetBlockedCommandIsNotConstructed = errors.New(
		"SetBlockedCommand must be created via NewSetBlockedCommand constructor",
	)
)

// SetBlockedCommand represents an admin's request to block or unblock a
// parcel. Blocking is orthogonal to the lifecycle: the current status is
// preserved and no history entry is written.
type SetBlockedCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	by       actor.Actor
	blocked  bool

	guard guard.ConstructorGuard
}

// NewSetBlockedCommand creates a command to set or clear the block flag.
// Validates the parcel id and the actor; the role check itself belongs to
// the aggregate.
func NewSetBlockedCommand(parcelID kernel.UUID, by actor.Actor, blocked bool) (SetBlockedCommand, error) {
	cmd := SetBlockedCommand{
		blocked: blocked,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setBy(by),
	); err != nil {
		return SetBlockedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetBlockedCommandIsNotConstructed if validation fails.
func (c SetBlockedCommand) Validate() error {
	return c.guard.Validate(ErrSetBlockedCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to block or unblock.
func (c SetBlockedCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// By returns the requesting actor.
func (c SetBlockedCommand) By() actor.Actor {
	return c.by
}

// Blocked returns the desired block state.
func (c SetBlockedCommand) Blocked() bool {
	return c.blocked
}

func (c *SetBlockedCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *SetBlockedCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
