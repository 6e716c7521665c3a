package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetUsersQueryIsNotConstructed = errors.New(
		"GetUsersQuery must be created via NewGetUsersQuery constructor",
	)
)

// GetUsersQuery retrieves a page of the admin user directory.
// Supports free-text search over display name and email, plus an optional
// role filter.
type GetUsersQuery struct {
	search string
	role   string
	page   int
	limit  int

	guard guard.ConstructorGuard
}

// NewGetUsersQuery creates an admin user directory query.
// The search term and role filter may be empty. Pages are 1-based; a zero
// limit falls back to the default page size.
func NewGetUsersQuery(search, role string, page, limit int) (GetUsersQuery, error) {
	if role != "" {
		if _, err := actor.RoleFromString(role); err != nil {
			return GetUsersQuery{}, err
		}
	}
	if page < 1 {
		return GetUsersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 1 || limit > maxPageLimit {
		return GetUsersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageLimit)
	}

	return GetUsersQuery{
		search: search,
		role:   role,
		page:   page,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUsersQueryIsNotConstructed if validation fails.
func (q GetUsersQuery) Validate() error {
	return q.guard.Validate(ErrGetUsersQueryIsNotConstructed)
}

// Search returns the free-text search term; empty means no filter.
func (q GetUsersQuery) Search() string {
	return q.search
}

// Role returns the role filter; empty means all roles.
func (q GetUsersQuery) Role() string {
	return q.role
}

// Page returns the 1-based page number.
func (q GetUsersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetUsersQuery) Limit() int {
	return q.limit
}

// UserListItemResponse is one row of the admin user directory.
type UserListItemResponse struct {
	ID          string
	DisplayName string
	Email       string
	Role        string
	CreatedAt   time.Time
}

// GetUsersQueryResponse is one page of the admin user directory.
type GetUsersQueryResponse struct {
	Items []UserListItemResponse
	Total int64
}
