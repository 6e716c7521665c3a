package cmd

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/adapters/out/identity"
	"parceltrack/internal/adapters/out/kafka"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/trackingid"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/locker"

	"gorm.io/gorm"
)

const (
	lockAcquireTimeout = 5 * time.Second
	trackCacheSize     = 1024
	trackCacheTTL      = 30 * time.Second
	jwtLeeway          = time.Minute
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locks      *locker.KeyedLocker
	publisher  ports.EventPublisher
	identities ports.IdentityProvider
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      locker.NewKeyedLocker(lockAcquireTimeout),
		identities: identity.NewJWTIdentityProvider([]byte(config.JWTSecret), jwtLeeway),
		logger:     logger,
	}

	publisher, err := kafka.NewStatusChangedProducer(
		[]string{config.KafkaHost}, config.KafkaStatusChangedTopic, logger)
	if err != nil {
		logger.Error("Kafka unavailable, status change events will be dropped", "error", err)
	} else {
		root.publisher = publisher
	}

	return root
}

func (c *CompositionRoot) Locker() *locker.KeyedLocker {
	return c.locks
}

func (c *CompositionRoot) IdentityProvider() ports.IdentityProvider {
	return c.identities
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, trackingid.NewPostgresGenerator(c.gormDB))
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyTransitionCommandHandler(f, c.locks, c.eventPublisher())
}

func (c *CompositionRoot) CreateSetBlockedCommandHandler() commands.SetBlockedCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetBlockedCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() *queries.CachedTrackParcelQueryHandler {
	return queries.NewCachedTrackParcelQueryHandler(
		queries.NewTrackParcelQueryHandler(c.gormDB), trackCacheSize, trackCacheTTL)
}

func (c *CompositionRoot) CreateGetParcelsQueryHandler() queries.GetParcelsQueryHandler {
	return queries.NewGetParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSenderParcelsQueryHandler() queries.GetSenderParcelsQueryHandler {
	return queries.NewGetSenderParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetIncomingParcelsQueryHandler() queries.GetIncomingParcelsQueryHandler {
	return queries.NewGetIncomingParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryHistoryQueryHandler() queries.GetDeliveryHistoryQueryHandler {
	return queries.NewGetDeliveryHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUsersQueryHandler() queries.GetUsersQueryHandler {
	return queries.NewGetUsersQueryHandler(c.gormDB)
}

// eventPublisher returns the Kafka publisher, or a no-op one when the broker
// was unreachable at startup.
func (c *CompositionRoot) eventPublisher() ports.EventPublisher {
	if c.publisher == nil {
		return noopEventPublisher{}
	}
	return c.publisher
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishStatusChanged(context.Context, *parcel.Parcel) error { return nil }

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}
