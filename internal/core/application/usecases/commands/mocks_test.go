package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockParcelUoW struct{ mock.Mock }

func (m *MockParcelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockTrackingIDGenerator struct{ mock.Mock }

func (m *MockTrackingIDGenerator) Next(ctx context.Context) (kernel.TrackingID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.TrackingID), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// noopLocker always grants the lock immediately. Handler tests that do not
// exercise contention use it instead of a real KeyedLocker.
type noopLocker struct{}

func (noopLocker) Acquire(_ context.Context, _ string) (func(), error) {
	return func() {}, nil
}

func testActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), "Test "+role.String(), role)
	require.NoError(t, err)
	return a
}

func testTrackingID(t *testing.T) kernel.TrackingID {
	t.Helper()
	trackingID, err := kernel.NewTrackingID(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	return trackingID
}

func testReceiverInfo(t *testing.T) parcel.ReceiverInfo {
	t.Helper()
	info, err := parcel.NewReceiverInfo("Jordan Reyes", "+1-555-0134", "221B Baker St", "Springfield")
	require.NoError(t, err)
	return info
}

func testDetails(t *testing.T) parcel.Details {
	t.Helper()
	details, err := parcel.NewDetails("DOCUMENT", 1.2, "signed contract")
	require.NoError(t, err)
	return details
}

func testParcel(t *testing.T, sender actor.Actor) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		testTrackingID(t),
		sender,
		testReceiverInfo(t),
		testDetails(t),
		24.50,
		time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}
