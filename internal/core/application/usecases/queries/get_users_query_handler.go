package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUsersQueryHandler serves the admin user directory with search, role
// filtering, and pagination.
type GetUsersQueryHandler struct {
	db *gorm.DB
}

// NewGetUsersQueryHandler creates a handler for user directory queries.
// Requires a GORM database connection for query execution.
func NewGetUsersQueryHandler(db *gorm.DB) GetUsersQueryHandler {
	return GetUsersQueryHandler{db: db}
}

// Handle executes the directory query, ordered by display name.
func (h GetUsersQueryHandler) Handle(
	ctx context.Context,
	query GetUsersQuery,
) (GetUsersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUsersQueryResponse{}, err
	}

	where := ` WHERE 1=1`
	args := make([]any, 0, 3)

	if search := query.Search(); search != "" {
		where += ` AND (display_name ILIKE ? OR email ILIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if role := query.Role(); role != "" {
		where += ` AND role = ?`
		args = append(args, role)
	}

	resp := GetUsersQueryResponse{Items: make([]UserListItemResponse, 0)}

	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM users`+where, args...).
		Scan(&resp.Total).Error
	if err != nil {
		return GetUsersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			display_name,
			email,
			role,
			created_at
		FROM users`+where+`
		ORDER BY display_name, id
		LIMIT ? OFFSET ?
	`, append(args, query.Limit(), offset)...).Rows()
	if err != nil {
		return GetUsersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item UserListItemResponse

		err = rows.Scan(
			&item.ID,
			&item.DisplayName,
			&item.Email,
			&item.Role,
			&item.CreatedAt,
		)
		if err != nil {
			return GetUsersQueryResponse{}, err
		}
		resp.Items = append(resp.Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetUsersQueryResponse{}, err
	}

	return resp, nil
}
