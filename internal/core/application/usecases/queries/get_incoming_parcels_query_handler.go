package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetIncomingParcelsQueryHandler serves the receiver's incoming listing.
type GetIncomingParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetIncomingParcelsQueryHandler creates a handler for incoming listings.
// Requires a GORM database connection for query execution.
func NewGetIncomingParcelsQueryHandler(db *gorm.DB) GetIncomingParcelsQueryHandler {
	return GetIncomingParcelsQueryHandler{db: db}
}

// Handle executes the listing query. A parcel is incoming while it is
// REQUESTED and its receiver slot is either this receiver or still open.
func (h GetIncomingParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetIncomingParcelsQuery,
) ([]ParcelListItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+parcelListColumns+`
		FROM parcels
		WHERE status = ?
		  AND (receiver_id = ? OR receiver_id IS NULL)
		ORDER BY created_at DESC, id
	`, parcel.StatusRequested.String(), query.ReceiverID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParcelListItems(rows)
}
