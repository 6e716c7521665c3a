package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSenderParcelsQueryHandler serves the sender's own parcel listing.
type GetSenderParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetSenderParcelsQueryHandler creates a handler for sender listings.
// Requires a GORM database connection for query execution.
func NewGetSenderParcelsQueryHandler(db *gorm.DB) GetSenderParcelsQueryHandler {
	return GetSenderParcelsQueryHandler{db: db}
}

// Handle executes the listing query, newest first.
func (h GetSenderParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetSenderParcelsQuery,
) ([]ParcelListItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+parcelListColumns+`
		FROM parcels
		WHERE sender_id = ?
		ORDER BY created_at DESC, id
	`, query.SenderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParcelListItems(rows)
}
