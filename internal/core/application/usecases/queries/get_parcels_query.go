package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetParcelsQueryIsNotConstructed = errors.New(
		"GetParcelsQuery must be created via NewGetParcelsQuery constructor",
	)
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GetParcelsQuery retrieves a page of the admin parcel directory.
// Supports free-text search over tracking id, destination city, and parcel
// type, plus an optional status filter.
//
// Example:
//
//	query, _ := NewGetParcelsQuery("springfield", "IN_TRANSIT", 1, 20)
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d parcels\n", len(page.Items), page.Total)
type GetParcelsQuery struct {
	search string
	status string
	page   int
	limit  int

	guard guard.ConstructorGuard
}

// NewGetParcelsQuery creates an admin directory query.
// The search term and status filter may be empty. Pages are 1-based; a zero
// limit falls back to the default page size.
func NewGetParcelsQuery(search, status string, page, limit int) (GetParcelsQuery, error) {
	if status != "" {
		if _, err := parcel.StatusFromString(status); err != nil {
			return GetParcelsQuery{}, err
		}
	}
	if page < 1 {
		return GetParcelsQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 1 || limit > maxPageLimit {
		return GetParcelsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageLimit)
	}

	return GetParcelsQuery{
		search: search,
		status: status,
		page:   page,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetParcelsQueryIsNotConstructed if validation fails.
func (q GetParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelsQueryIsNotConstructed)
}

// Search returns the free-text search term; empty means no filter.
func (q GetParcelsQuery) Search() string {
	return q.search
}

// Status returns the status filter; empty means all statuses.
func (q GetParcelsQuery) Status() string {
	return q.status
}

// Page returns the 1-based page number.
func (q GetParcelsQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetParcelsQuery) Limit() int {
	return q.limit
}

// ParcelListItemResponse is one row of a parcel listing. Shared by the admin
// directory and the sender/receiver listings.
type ParcelListItemResponse struct {
	ID              string
	TrackingID      string
	SenderID        string
	ReceiverID      *string
	ReceiverName    string
	DestinationCity string
	ParcelType      string
	Status          string
	IsBlocked       bool
	Fee             float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GetParcelsQueryResponse is one page of the admin parcel directory.
// Total counts all rows matching the filters, not just this page.
type GetParcelsQueryResponse struct {
	Items []ParcelListItemResponse
	Total int64
}
