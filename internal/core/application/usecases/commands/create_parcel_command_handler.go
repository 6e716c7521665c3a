package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
)

// CreateParcelCommandHandler handles the business logic for parcel creation.
// Generates a tracking identifier, creates the parcel in REQUESTED status
// with its first history entry, and persists it transactionally.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, trackingIDs)
//	cmd, _ := NewCreateParcelCommand(kernel.NewUUID(), sender, receiverInfo, details, 24.50)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("parcel creation failed: %w", err)
//	}
//	fmt.Printf("Parcel registered with tracking id %s", created.TrackingID())
type CreateParcelCommandHandler struct {
	uowFactory  ParcelUoWFactory
	trackingIDs ports.TrackingIDGenerator
}

// NewCreateParcelCommandHandler creates a handler for parcel creation operations.
// Requires a ParcelUoWFactory for transactional persistence and a
// TrackingIDGenerator for issuing public identifiers.
func NewCreateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	trackingIDs ports.TrackingIDGenerator,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory:  uowFactory,
		trackingIDs: trackingIDs,
	}
}

// Handle processes the parcel creation command.
// Returns the created aggregate so the caller can surface the tracking id.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	trackingID, err := h.trackingIDs.Next(ctx)
	if err != nil {
		return nil, err
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		trackingID,
		cmd.Sender(),
		cmd.ReceiverInfo(),
		cmd.Details(),
		cmd.Fee(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newParcel, nil
}
