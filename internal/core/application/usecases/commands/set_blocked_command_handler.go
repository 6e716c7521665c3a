package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// SetBlockedCommandHandler handles admin block and unblock operations.
// Runs under the same per-parcel lock and optimistic concurrency scheme as
// lifecycle transitions, since both mutate the same aggregate row.
type SetBlockedCommandHandler struct {
	uowFactory ParcelUoWFactory
	locks      ParcelLocker
}

// NewSetBlockedCommandHandler creates a handler for block/unblock operations.
func NewSetBlockedCommandHandler(uowFactory ParcelUoWFactory, locks ParcelLocker) SetBlockedCommandHandler {
	return SetBlockedCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle processes the block/unblock command and returns the updated parcel.
func (h *SetBlockedCommandHandler) Handle(ctx context.Context, cmd SetBlockedCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	release, err := h.locks.Acquire(ctx, cmd.ParcelID().String())
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *parcel.Parcel
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		updated, err = h.setOnce(ctx, cmd)
		if err == nil {
			break
		}
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (h *SetBlockedCommandHandler) setOnce(ctx context.Context, cmd SetBlockedCommand) (*parcel.Parcel, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	aggregate, err := repo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.SetBlocked(cmd.By(), cmd.Blocked(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
