package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetParcelsQueryHandler serves the admin parcel directory with search,
// status filtering, and pagination.
type GetParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelsQueryHandler creates a handler for admin directory queries.
// Requires a GORM database connection for query execution.
func NewGetParcelsQueryHandler(db *gorm.DB) GetParcelsQueryHandler {
	return GetParcelsQueryHandler{db: db}
}

// Handle executes the directory query. Results are ordered newest first;
// Total reflects all rows matching the filters.
func (h GetParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetParcelsQuery,
) (GetParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelsQueryResponse{}, err
	}

	where := ` WHERE 1=1`
	args := make([]any, 0, 4)

	if search := query.Search(); search != "" {
		where += ` AND (tracking_id ILIKE ? OR receiver_city ILIKE ? OR parcel_type ILIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if status := query.Status(); status != "" {
		where += ` AND status = ?`
		args = append(args, status)
	}

	resp := GetParcelsQueryResponse{Items: make([]ParcelListItemResponse, 0)}

	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM parcels`+where, args...).
		Scan(&resp.Total).Error
	if err != nil {
		return GetParcelsQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+parcelListColumns+`
		FROM parcels`+where+`
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, append(args, query.Limit(), offset)...).Rows()
	if err != nil {
		return GetParcelsQueryResponse{}, err
	}
	defer rows.Close()

	resp.Items, err = scanParcelListItems(rows)
	if err != nil {
		return GetParcelsQueryResponse{}, err
	}

	return resp, nil
}
