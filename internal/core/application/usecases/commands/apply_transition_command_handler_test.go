package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyTransitionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sender := testActor(t, actor.RoleSender)
	receiver := testActor(t, actor.RoleReceiver)
	aggregate := testParcel(t, sender)
	cmd, _ := commands.NewApplyTransitionCommand(aggregate.ID(), receiver, parcel.EventApprove, "")

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, aggregate).Return(nil).Once()

	h := commands.NewApplyTransitionCommandHandler(factory, noopLocker{}, publisher)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, parcel.StatusApproved, updated.Status())
	assert.Len(t, updated.History(), 2)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ApplyTransitionCommand{} // not constructed properly

	factory := new(MockParcelUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewApplyTransitionCommandHandler(factory, noopLocker{}, publisher)

	updated, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Nil(t, updated)
}

func TestApplyTransitionCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	admin := testActor(t, actor.RoleAdmin)
	parcelID := kernel.NewUUID()
	cmd, _ := commands.NewApplyTransitionCommand(parcelID, admin, parcel.EventPickUp, "")

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, parcelID).Return(nil, errs.NewObjectNotFoundError("parcelID", parcelID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewApplyTransitionCommandHandler(factory, noopLocker{}, publisher)
	updated, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestApplyTransitionCommandHandler_Handle_DomainErrorIsNotRetried(t *testing.T) {
	ctx := t.Context()
	sender := testActor(t, actor.RoleSender)
	admin := testActor(t, actor.RoleAdmin)
	aggregate := testParcel(t, sender)
	// Deliver is not legal from REQUESTED.
	cmd, _ := commands.NewApplyTransitionCommand(aggregate.ID(), admin, parcel.EventDeliver, "")

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewApplyTransitionCommandHandler(factory, noopLocker{}, publisher)
	updated, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestApplyTransitionCommandHandler_Handle_RetriesOnConflict(t *testing.T) {
	ctx := t.Context()
	sender := testActor(t, actor.RoleSender)
	receiver := testActor(t, actor.RoleReceiver)
	first := testParcel(t, sender)
	second := restoreCopy(t, first)
	cmd, _ := commands.NewApplyTransitionCommand(first.ID(), receiver, parcel.EventApprove, "")

	repo := new(MockParcelRepository)
	repo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	repo.On("Update", mock.Anything, first).
		Return(errs.NewConcurrencyConflictError("version", first.ID())).Once()
	repo.On("Get", mock.Anything, first.ID()).Return(second, nil).Once()
	repo.On("Update", mock.Anything, second).Return(nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("ParcelRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Twice()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, second).Return(nil).Once()

	h := commands.NewApplyTransitionCommandHandler(factory, noopLocker{}, publisher)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusApproved, updated.Status())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_Handle_ConflictRetriesExhausted(t *testing.T) {
	ctx := t.Context()
	sender := testActor(t, actor.RoleSender)
	receiver := testActor(t, actor.RoleReceiver)
	aggregate := testParcel(t, sender)
	cmd, _ := commands.NewApplyTransitionCommand(aggregate.ID(), receiver, parcel.EventApprove, "")

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("ParcelRepository").Return(repo).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)
	for range 3 {
		fresh := restoreCopy(t, aggregate)
		repo.On("Get", mock.Anything, aggregate.ID()).Return(fresh, nil).Once()
		repo.On("Update", mock.Anything, fresh).
			Return(errs.NewConcurrencyConflictError("version", aggregate.ID())).Once()
	}

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Times(3)
	publisher := new(MockEventPublisher)

	h := commands.NewApplyTransitionCommandHandler(factory, noopLocker{}, publisher)
	updated, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestApplyTransitionCommandHandler_Handle_PublishFailureIsIgnored(t *testing.T) {
	ctx := t.Context()
	sender := testActor(t, actor.RoleSender)
	receiver := testActor(t, actor.RoleReceiver)
	aggregate := testParcel(t, sender)
	cmd, _ := commands.NewApplyTransitionCommand(aggregate.ID(), receiver, parcel.EventApprove, "")

	repo := new(MockParcelRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, aggregate).
		Return(errs.NewConcurrencyConflictError("broker", "down")).Once()

	h := commands.NewApplyTransitionCommandHandler(factory, noopLocker{}, publisher)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusApproved, updated.Status())
	publisher.AssertExpectations(t)
}

// restoreCopy rebuilds an independent aggregate with the same persisted state.
func restoreCopy(t *testing.T, p *parcel.Parcel) *parcel.Parcel {
	t.Helper()
	copied, err := parcel.RestoreParcel(
		p.ID(), p.TrackingID(), p.SenderID(), p.ReceiverID(),
		p.ReceiverInfo(), p.Details(), p.Fee(),
		p.Status(), p.IsBlocked(), p.HeldFromStatus(),
		p.History(), p.CreatedAt(), p.UpdatedAt(), p.Version(),
	)
	require.NoError(t, err)
	return copied
}

// memStore is an in-memory parcel store with version checking, used to drive
// the handler with real concurrency instead of mocks.
type memStore struct {
	mu sync.Mutex
	p  *parcel.Parcel
}

type memUoW struct{ store *memStore }

func (u *memUoW) Begin(_ context.Context) error            { return nil }
func (u *memUoW) Commit(_ context.Context) error           { return nil }
func (u *memUoW) Rollback(_ context.Context) error         { return nil }
func (u *memUoW) ParcelRepository() ports.ParcelRepository { return &memRepo{store: u.store} }

type memRepo struct{ store *memStore }

func (r *memRepo) Add(_ context.Context, p *parcel.Parcel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.p = p
	return nil
}

func (r *memRepo) Update(_ context.Context, p *parcel.Parcel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p.Version() != r.store.p.Version() {
		return errs.NewConcurrencyConflictError("version", p.ID())
	}
	p.BumpVersion()
	r.store.p = p
	return nil
}

func (r *memRepo) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.p == nil || !r.store.p.ID().IsEqual(id) {
		return nil, errs.NewObjectNotFoundError("parcelID", id)
	}
	return parcel.RestoreParcel(
		r.store.p.ID(), r.store.p.TrackingID(), r.store.p.SenderID(), r.store.p.ReceiverID(),
		r.store.p.ReceiverInfo(), r.store.p.Details(), r.store.p.Fee(),
		r.store.p.Status(), r.store.p.IsBlocked(), r.store.p.HeldFromStatus(),
		r.store.p.History(), r.store.p.CreatedAt(), r.store.p.UpdatedAt(), r.store.p.Version(),
	)
}

func (r *memRepo) GetByTrackingID(_ context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	return nil, errs.NewObjectNotFoundError("trackingID", trackingID)
}

type memFactory struct{ store *memStore }

func (f *memFactory) Create() commands.ParcelUoW { return &memUoW{store: f.store} }

func TestApplyTransitionCommandHandler_Handle_ConcurrentRequestsAreSerialized(t *testing.T) {
	ctx := context.Background()
	sender := testActor(t, actor.RoleSender)
	receiver := testActor(t, actor.RoleReceiver)
	admin := testActor(t, actor.RoleAdmin)

	aggregate := testParcel(t, sender)
	require.NoError(t, aggregate.ApplyTransition(receiver, parcel.EventApprove, "", time.Now()))

	store := &memStore{p: aggregate}
	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil)

	locks := locker.NewKeyedLocker(5 * time.Second)
	h := commands.NewApplyTransitionCommandHandler(&memFactory{store: store}, locks, publisher)

	const workers = 8
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewApplyTransitionCommand(aggregate.ID(), admin, parcel.EventPickUp, "")
			if err != nil {
				results <- err
				return
			}
			_, err = h.Handle(ctx, cmd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	}
	assert.Equal(t, 1, successes)

	final, err := (&memRepo{store: store}).Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.Equal(t, parcel.StatusPickedUp, final.Status())
	assert.Len(t, final.History(), 3)
}
