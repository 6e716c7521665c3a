package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
)

// CreateParcelCommand represents a sender's request to register a new parcel.
// Encapsulates the receiver snapshot, the physical details, and the fee
// computed upstream.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(kernel.NewUUID(), sender, receiverInfo, details, 24.50)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory, trackingIDs)
//	created, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID     kernel.UUID
	sender       actor.Actor
	receiverInfo parcel.ReceiverInfo
	details      parcel.Details
	fee          float64

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a new parcel.
// Validates the parcel id, the sender, and the receiver/details snapshots.
// The fee must not be negative.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	sender actor.Actor,
	receiverInfo parcel.ReceiverInfo,
	details parcel.Details,
	fee float64,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSender(sender),
		cmd.setReceiverInfo(receiverInfo),
		cmd.setDetails(details),
		cmd.setFee(fee),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateParcelCommandIsNotConstructed if validation fails.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Sender returns the creating actor.
func (c CreateParcelCommand) Sender() actor.Actor {
	return c.sender
}

// ReceiverInfo returns the receiver contact snapshot.
func (c CreateParcelCommand) ReceiverInfo() parcel.ReceiverInfo {
	return c.receiverInfo
}

// Details returns the physical parcel details.
func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}

// Fee returns the delivery fee computed upstream.
func (c CreateParcelCommand) Fee() float64 {
	return c.fee
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSender(sender actor.Actor) error {
	if err := sender.Validate(); err != nil {
		return err
	}

	c.sender = sender
	return nil
}

func (c *CreateParcelCommand) setReceiverInfo(receiverInfo parcel.ReceiverInfo) error {
	if err := receiverInfo.Validate(); err != nil {
		return err
	}

	c.receiverInfo = receiverInfo
	return nil
}

func (c *CreateParcelCommand) setDetails(details parcel.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}

	c.details = details
	return nil
}

func (c *CreateParcelCommand) setFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("fee")
	}

	c.fee = fee
	return nil
}
