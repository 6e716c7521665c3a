package queries

import (
	"database/sql"
)

// parcelListColumns is the projection shared by every parcel listing query.
const parcelListColumns = `
			id,
			tracking_id,
			sender_id,
			receiver_id,
			receiver_name,
			receiver_city,
			parcel_type,
			status,
			is_blocked,
			fee,
			created_at,
			updated_at`

// scanParcelListItems drains rows selected with parcelListColumns.
func scanParcelListItems(rows *sql.Rows) ([]ParcelListItemResponse, error) {
	items := make([]ParcelListItemResponse, 0)

	for rows.Next() {
		var item ParcelListItemResponse

		err := rows.Scan(
			&item.ID,
			&item.TrackingID,
			&item.SenderID,
			&item.ReceiverID,
			&item.ReceiverName,
			&item.DestinationCity,
			&item.ParcelType,
			&item.Status,
			&item.IsBlocked,
			&item.Fee,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
