package parcelrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database together with its status log.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel conditionally on its version, appending
// any status log entries recorded since it was loaded. A version mismatch
// means another writer got there first and fails with ConcurrencyConflictError;
// on success the aggregate's version is advanced to the stored one.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"receiver_id":      dto.ReceiverID,
			"status":           dto.Status,
			"is_blocked":       dto.IsBlocked,
			"held_from_status": dto.HeldFromStatus,
			"updated_at":       dto.UpdatedAt,
			"version":          dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("version", aggregate.ID().String())
	}

	if err := r.appendNewLogs(ctx, dto); err != nil {
		return err
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// appendNewLogs inserts the status log entries not yet persisted. The log is
// append-only, so everything beyond the stored row count is new.
func (r *GormParcelRepository) appendNewLogs(ctx context.Context, dto ParcelDTO) error {
	var stored int64
	if err := r.db.WithContext(ctx).Model(&StatusLogDTO{}).
		Where("parcel_id = ?", dto.ID).Count(&stored).Error; err != nil {
		return err
	}

	if int(stored) >= len(dto.StatusLogs) {
		return nil
	}

	newLogs := dto.StatusLogs[stored:]
	return r.db.WithContext(ctx).Create(&newLogs).Error
}

// Get retrieves a parcel by ID, including its full status log.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.preloaded(ctx).First(&dto, "parcels.id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves a parcel by its public tracking identifier.
func (r *GormParcelRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.preloaded(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("StatusLogs", func(db *gorm.DB) *gorm.DB {
		return db.Order("parcel_status_logs.id")
	})
}
