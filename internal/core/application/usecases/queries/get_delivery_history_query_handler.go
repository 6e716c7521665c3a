package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetDeliveryHistoryQueryHandler serves the receiver's delivered-parcel history.
type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryHistoryQueryHandler creates a handler for delivery history queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle executes the history query, newest first.
func (h GetDeliveryHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryHistoryQuery,
) (GetDeliveryHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryHistoryQueryResponse{}, err
	}

	resp := GetDeliveryHistoryQueryResponse{Items: make([]ParcelListItemResponse, 0)}

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM parcels
		WHERE receiver_id = ? AND status = ?
	`, query.ReceiverID().Bytes(), parcel.StatusDelivered.String()).Scan(&resp.Total).Error
	if err != nil {
		return GetDeliveryHistoryQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+parcelListColumns+`
		FROM parcels
		WHERE receiver_id = ? AND status = ?
		ORDER BY updated_at DESC, id
		LIMIT ? OFFSET ?
	`, query.ReceiverID().Bytes(), parcel.StatusDelivered.String(), query.Limit(), offset).Rows()
	if err != nil {
		return GetDeliveryHistoryQueryResponse{}, err
	}
	defer rows.Close()

	resp.Items, err = scanParcelListItems(rows)
	if err != nil {
		return GetDeliveryHistoryQueryResponse{}, err
	}

	return resp, nil
}
