package queries_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(kernel.UUID, interface{}) {}

// QueryHandlersTestSuite runs the read-side handlers against a real
// PostgreSQL database seeded through the write-side repositories, so the
// raw SQL projections are exercised against the schema the DTOs produce.
type QueryHandlersTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	parcelRepo *parcelrepo.GormParcelRepository

	sender   actor.Actor
	receiver actor.Actor
	admin    actor.Actor

	requested *parcel.Parcel
	approved  *parcel.Parcel
	delivered *parcel.Parcel
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.StatusLogDTO{}, &userrepo.UserDTO{})
	suite.Require().NoError(err)

	suite.parcelRepo = parcelrepo.NewGormParcelRepository(db, mockAggregateTracker{})
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_logs, users").Error)

	var err error
	suite.sender, err = actor.NewActor(kernel.NewUUID(), "Sam Carter", actor.RoleSender)
	suite.Require().NoError(err)
	suite.receiver, err = actor.NewActor(kernel.NewUUID(), "Jordan Reyes", actor.RoleReceiver)
	suite.Require().NoError(err)
	suite.admin, err = actor.NewActor(kernel.NewUUID(), "Ops Admin", actor.RoleAdmin)
	suite.Require().NoError(err)

	suite.requested = suite.seedParcel(1, "Aurora")
	suite.approved = suite.seedParcel(2, "Brookfield")
	suite.delivered = suite.seedParcel(3, "Caldwell")

	suite.advance(suite.approved, suite.receiver, parcel.EventApprove)

	suite.advance(suite.delivered, suite.receiver, parcel.EventApprove)
	suite.advance(suite.delivered, suite.admin, parcel.EventPickUp)
	suite.advance(suite.delivered, suite.admin, parcel.EventStartTransit)
	suite.advance(suite.delivered, suite.admin, parcel.EventDeliver)
}

func (suite *QueryHandlersTestSuite) seedParcel(sequence int, city string) *parcel.Parcel {
	trackingID, err := kernel.NewTrackingID(time.Now().UTC(), sequence)
	suite.Require().NoError(err)

	receiverInfo, err := parcel.NewReceiverInfo("Jordan Reyes", "+1-555-0134", "221B Baker St", city)
	suite.Require().NoError(err)

	details, err := parcel.NewDetails("BOX", 2.5, "books")
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(), trackingID, suite.sender, receiverInfo, details, 10.00,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.parcelRepo.Add(context.Background(), p))
	return p
}

func (suite *QueryHandlersTestSuite) advance(p *parcel.Parcel, by actor.Actor, event parcel.Event) {
	suite.Require().NoError(p.ApplyTransition(by, event, "", time.Now().UTC().Truncate(time.Microsecond)))
	suite.Require().NoError(suite.parcelRepo.Update(context.Background(), p))
}

func (suite *QueryHandlersTestSuite) TestTrackParcel_ReturnsPublicView() {
	handler := queries.NewTrackParcelQueryHandler(suite.db)
	query, err := queries.NewTrackParcelQuery(suite.delivered.TrackingID())
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(suite.delivered.TrackingID().String(), result.TrackingID)
	suite.Equal("BOX", result.ParcelType)
	suite.Equal("Caldwell", result.DestinationCity)
	suite.Equal("DELIVERED", result.CurrentStatus)
	suite.False(result.IsBlocked)

	suite.Require().Len(result.StatusLogs, 5)
	statuses := make([]string, 0, len(result.StatusLogs))
	roles := make([]string, 0, len(result.StatusLogs))
	for _, log := range result.StatusLogs {
		statuses = append(statuses, log.Status)
		roles = append(roles, log.UpdatedByRole)
	}
	suite.Equal([]string{"REQUESTED", "APPROVED", "PICKED_UP", "IN_TRANSIT", "DELIVERED"}, statuses)
	suite.Equal([]string{"SENDER", "RECEIVER", "ADMIN", "ADMIN", "ADMIN"}, roles)
}

func (suite *QueryHandlersTestSuite) TestTrackParcel_UnknownTrackingID_ReturnsNotFound() {
	handler := queries.NewTrackParcelQueryHandler(suite.db)
	missing, err := kernel.NewTrackingID(time.Now().UTC(), 999999)
	suite.Require().NoError(err)
	query, err := queries.NewTrackParcelQuery(missing)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetParcels_NoFilters_ReturnsAll() {
	handler := queries.NewGetParcelsQueryHandler(suite.db)
	query, err := queries.NewGetParcelsQuery("", "", 1, 10)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(3), result.Total)
	suite.Len(result.Items, 3)
}

func (suite *QueryHandlersTestSuite) TestGetParcels_StatusFilter() {
	handler := queries.NewGetParcelsQueryHandler(suite.db)
	query, err := queries.NewGetParcelsQuery("", "DELIVERED", 1, 10)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(1), result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal(suite.delivered.ID().String(), result.Items[0].ID)
	suite.Equal("DELIVERED", result.Items[0].Status)
	suite.Require().NotNil(result.Items[0].ReceiverID)
	suite.Equal(suite.receiver.ID().String(), *result.Items[0].ReceiverID)
}

func (suite *QueryHandlersTestSuite) TestGetParcels_SearchMatchesCity() {
	handler := queries.NewGetParcelsQueryHandler(suite.db)
	query, err := queries.NewGetParcelsQuery("brook", "", 1, 10)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(1), result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal("Brookfield", result.Items[0].DestinationCity)
}

func (suite *QueryHandlersTestSuite) TestGetParcels_Pagination() {
	handler := queries.NewGetParcelsQueryHandler(suite.db)

	firstPage, err := queries.NewGetParcelsQuery("", "", 1, 2)
	suite.Require().NoError(err)
	secondPage, err := queries.NewGetParcelsQuery("", "", 2, 2)
	suite.Require().NoError(err)

	first, err := handler.Handle(context.Background(), firstPage)
	suite.Require().NoError(err)
	second, err := handler.Handle(context.Background(), secondPage)
	suite.Require().NoError(err)

	suite.Equal(int64(3), first.Total)
	suite.Len(first.Items, 2)
	suite.Equal(int64(3), second.Total)
	suite.Len(second.Items, 1)
}

func (suite *QueryHandlersTestSuite) TestGetSenderParcels_ReturnsOwnParcelsOnly() {
	otherSender, err := actor.NewActor(kernel.NewUUID(), "Riley Moss", actor.RoleSender)
	suite.Require().NoError(err)
	original := suite.sender
	suite.sender = otherSender
	other := suite.seedParcel(4, "Dover")
	suite.sender = original

	handler := queries.NewGetSenderParcelsQueryHandler(suite.db)
	query, err := queries.NewGetSenderParcelsQuery(original.ID())
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)
	for _, item := range result {
		suite.Equal(original.ID().String(), item.SenderID)
		suite.NotEqual(other.ID().String(), item.ID)
	}
}

func (suite *QueryHandlersTestSuite) TestGetIncomingParcels_ReturnsOpenRequests() {
	handler := queries.NewGetIncomingParcelsQueryHandler(suite.db)
	query, err := queries.NewGetIncomingParcelsQuery(suite.receiver.ID())
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(suite.requested.ID().String(), result[0].ID)
	suite.Equal("REQUESTED", result[0].Status)
	suite.Nil(result[0].ReceiverID)
}

func (suite *QueryHandlersTestSuite) TestGetDeliveryHistory_ReturnsDeliveredParcels() {
	handler := queries.NewGetDeliveryHistoryQueryHandler(suite.db)
	query, err := queries.NewGetDeliveryHistoryQuery(suite.receiver.ID(), 1, 10)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(1), result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal(suite.delivered.ID().String(), result.Items[0].ID)
}

func (suite *QueryHandlersTestSuite) TestGetUsers_SearchAndRoleFilter() {
	for _, u := range []userrepo.UserDTO{
		{ID: kernel.NewUUID().Bytes(), DisplayName: "Sam Carter", Email: "sam@parceltrack.io", Role: "SENDER", CreatedAt: time.Now().UTC()},
		{ID: kernel.NewUUID().Bytes(), DisplayName: "Jordan Reyes", Email: "jordan@parceltrack.io", Role: "RECEIVER", CreatedAt: time.Now().UTC()},
		{ID: kernel.NewUUID().Bytes(), DisplayName: "Ops Admin", Email: "admin@parceltrack.io", Role: "ADMIN", CreatedAt: time.Now().UTC()},
	} {
		suite.Require().NoError(suite.db.Create(&u).Error)
	}

	handler := queries.NewGetUsersQueryHandler(suite.db)

	all, err := queries.NewGetUsersQuery("", "", 1, 10)
	suite.Require().NoError(err)
	result, err := handler.Handle(context.Background(), all)
	suite.Require().NoError(err)
	suite.Equal(int64(3), result.Total)

	byName, err := queries.NewGetUsersQuery("jordan", "", 1, 10)
	suite.Require().NoError(err)
	result, err = handler.Handle(context.Background(), byName)
	suite.Require().NoError(err)
	suite.Equal(int64(1), result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal("Jordan Reyes", result.Items[0].DisplayName)

	admins, err := queries.NewGetUsersQuery("", "ADMIN", 1, 10)
	suite.Require().NoError(err)
	result, err = handler.Handle(context.Background(), admins)
	suite.Require().NoError(err)
	suite.Equal(int64(1), result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal("ADMIN", result.Items[0].Role)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(QueryHandlersTestSuite))
}
