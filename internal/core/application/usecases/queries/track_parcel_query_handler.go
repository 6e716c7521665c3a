package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackParcelQueryHandler serves the public tracking view straight from the
// database. Unknown tracking ids fail with ObjectNotFoundError.
type TrackParcelQueryHandler struct {
	db *gorm.DB
}

// NewTrackParcelQueryHandler creates a handler for public tracking lookups.
// Requires a GORM database connection for query execution.
func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db}
}

// Handle executes the tracking lookup and assembles the public view,
// including the full status log in chronological order.
func (h TrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	var resp TrackParcelQueryResponse
	var parcelID string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			parcel_type,
			receiver_city,
			status,
			is_blocked,
			created_at
		FROM parcels
		WHERE tracking_id = ?
	`, query.TrackingID().String()).Row()

	err := row.Scan(
		&parcelID,
		&resp.TrackingID,
		&resp.ParcelType,
		&resp.DestinationCity,
		&resp.CurrentStatus,
		&resp.IsBlocked,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return TrackParcelQueryResponse{}, errs.NewObjectNotFoundError("trackingID", query.TrackingID())
		}
		return TrackParcelQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			timestamp,
			updated_by_role,
			note
		FROM parcel_status_logs
		WHERE parcel_id = ?
		ORDER BY id
	`, parcelID).Rows()
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusLogResponse
		var timestamp time.Time

		if err = rows.Scan(&entry.Status, &timestamp, &entry.UpdatedByRole, &entry.Note); err != nil {
			return TrackParcelQueryResponse{}, err
		}
		entry.Timestamp = timestamp
		resp.StatusLogs = append(resp.StatusLogs, entry)
	}

	if err = rows.Err(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	return resp, nil
}
