// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate, handling the conversion between domain entities and database
// representations, including the append-only status log child table.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Timestamps come from the domain, so GORM's automatic time tracking is
// switched off. The version column backs optimistic concurrency control.
type ParcelDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID string     `gorm:"uniqueIndex"`
	SenderID   uuid.UUID  `gorm:"type:uuid;index"`
	ReceiverID *uuid.UUID `gorm:"type:uuid;index"`

	Receiver ReceiverInfoDTO `gorm:"embedded;embeddedPrefix:receiver_"`

	ParcelType  string
	WeightKg    float64
	Description string
	Fee         float64

	Status         string `gorm:"index"`
	IsBlocked      bool
	HeldFromStatus string

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
	Version   int

	StatusLogs []StatusLogDTO `gorm:"foreignKey:ParcelID;references:ID"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// ReceiverInfoDTO represents the embedded receiver contact snapshot within
// the parcel table.
type ReceiverInfoDTO struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// StatusLogDTO represents one row of the append-only status log child table.
// The auto-incrementing id preserves insertion order, which equals the
// chronological order of transitions.
type StatusLogDTO struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	ParcelID uuid.UUID `gorm:"type:uuid;index"`

	Status    string
	Timestamp time.Time `gorm:"autoCreateTime:false"`

	UpdatedByID   uuid.UUID `gorm:"type:uuid"`
	UpdatedByName string
	UpdatedByRole string

	Note string
}

// TableName specifies the database table name for status log entries.
func (StatusLogDTO) TableName() string {
	return "parcel_status_logs"
}

// fromDomain converts a parcel domain aggregate to its database representation,
// including all status log entries. New entries carry a zero log id; the
// database assigns one on insert.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var receiverID *uuid.UUID
	if id := aggregate.ReceiverID(); id != nil {
		raw := id.Bytes()
		receiverID = &raw
	}

	heldFrom := ""
	if aggregate.HeldFromStatus() != parcel.StatusUnknown {
		heldFrom = aggregate.HeldFromStatus().String()
	}

	history := aggregate.History()
	logs := make([]StatusLogDTO, 0, len(history))
	for _, entry := range history {
		logs = append(logs, StatusLogDTO{
			ParcelID:      aggregate.ID().Bytes(),
			Status:        entry.Status().String(),
			Timestamp:     entry.Timestamp(),
			UpdatedByID:   entry.UpdatedBy().ID().Bytes(),
			UpdatedByName: entry.UpdatedBy().DisplayName(),
			UpdatedByRole: entry.UpdatedBy().Role().String(),
			Note:          entry.Note(),
		})
	}

	return ParcelDTO{
		ID:         aggregate.ID().Bytes(),
		TrackingID: aggregate.TrackingID().String(),
		SenderID:   aggregate.SenderID().Bytes(),
		ReceiverID: receiverID,
		Receiver: ReceiverInfoDTO{
			Name:    aggregate.ReceiverInfo().Name(),
			Phone:   aggregate.ReceiverInfo().Phone(),
			Address: aggregate.ReceiverInfo().Address(),
			City:    aggregate.ReceiverInfo().City(),
		},
		ParcelType:     aggregate.Details().ParcelType(),
		WeightKg:       aggregate.Details().WeightKg(),
		Description:    aggregate.Details().Description(),
		Fee:            aggregate.Fee(),
		Status:         aggregate.Status().String(),
		IsBlocked:      aggregate.IsBlocked(),
		HeldFromStatus: heldFrom,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Version:        aggregate.Version(),
		StatusLogs:     logs,
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// The status log rows must already be ordered by id.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := kernel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	var receiverID *kernel.UUID
	if dto.ReceiverID != nil {
		rID, receiverErr := kernel.UUIDFromBytes((*dto.ReceiverID)[:])
		if receiverErr != nil {
			return nil, receiverErr
		}
		receiverID = &rID
	}

	receiverInfo, err := parcel.NewReceiverInfo(
		dto.Receiver.Name,
		dto.Receiver.Phone,
		dto.Receiver.Address,
		dto.Receiver.City,
	)
	if err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(dto.ParcelType, dto.WeightKg, dto.Description)
	if err != nil {
		return nil, err
	}

	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	heldFrom := parcel.StatusUnknown
	if dto.HeldFromStatus != "" {
		heldFrom, err = parcel.StatusFromString(dto.HeldFromStatus)
		if err != nil {
			return nil, err
		}
	}

	history := make([]parcel.HistoryEntry, 0, len(dto.StatusLogs))
	for _, log := range dto.StatusLogs {
		entry, logErr := logToDomain(log)
		if logErr != nil {
			return nil, logErr
		}
		history = append(history, entry)
	}

	return parcel.RestoreParcel(
		id,
		trackingID,
		senderID,
		receiverID,
		receiverInfo,
		details,
		dto.Fee,
		status,
		dto.IsBlocked,
		heldFrom,
		history,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

// logToDomain converts one status log row to a domain history entry.
func logToDomain(dto StatusLogDTO) (parcel.HistoryEntry, error) {
	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.UpdatedByID[:])
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	role, err := actor.RoleFromString(dto.UpdatedByRole)
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	by, err := parcel.RestoreActorRef(actorID, dto.UpdatedByName, role)
	if err != nil {
		return parcel.HistoryEntry{}, err
	}

	return parcel.NewHistoryEntry(status, dto.Timestamp, by, dto.Note)
}
