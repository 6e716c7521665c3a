package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// maxTransitionAttempts bounds optimistic-concurrency retries for a single
// transition request. The per-parcel lock makes conflicts rare; retries only
// matter when another process mutates the same parcel between our read and
// write.
const maxTransitionAttempts = 3

// ParcelLocker serializes transition execution per parcel within this
// process. Acquire blocks until the key is free or the locker's timeout
// elapses, then returns a release function.
type ParcelLocker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// ApplyTransitionCommandHandler handles lifecycle transitions.
// Each call loads the parcel, lets the aggregate authorize and apply the
// event, and persists the result under optimistic concurrency. A successful
// transition is announced through the event publisher after commit.
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, locks, publisher)
//	cmd, _ := NewApplyTransitionCommand(parcelID, receiver, parcel.EventApprove, "")
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
//	fmt.Printf("Parcel is now %s", updated.Status())
type ApplyTransitionCommandHandler struct {
	uowFactory ParcelUoWFactory
	locks      ParcelLocker
	publisher  ports.EventPublisher
}

// NewApplyTransitionCommandHandler creates a handler for transition operations.
func NewApplyTransitionCommandHandler(
	uowFactory ParcelUoWFactory,
	locks ParcelLocker,
	publisher ports.EventPublisher,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle processes the transition command.
//
// The per-parcel lock serializes concurrent requests for the same parcel in
// this process; the version check in the repository covers writes from other
// processes. Version conflicts are retried up to maxTransitionAttempts times
// before the ConcurrencyConflictError is surfaced to the caller.
func (h *ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) (*parcel.Parcel, error) {
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
		updated, err = h.applyOnce(ctx, cmd)
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

	// Best effort: the state change is already committed, a lost event must
	// not fail the request. Publisher implementations log their own errors.
	_ = h.publisher.PublishStatusChanged(ctx, updated)

	return updated, nil
}

// applyOnce runs one load-mutate-store cycle inside its own transaction.
func (h *ApplyTransitionCommandHandler) applyOnce(ctx context.Context, cmd ApplyTransitionCommand) (*parcel.Parcel, error) {
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

	if err = aggregate.ApplyTransition(cmd.By(), cmd.Event(), cmd.Note(), time.Now().UTC()); err != nil {
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
