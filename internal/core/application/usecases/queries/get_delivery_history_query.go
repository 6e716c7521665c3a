package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
		"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
	)
)

// GetDeliveryHistoryQuery retrieves a page of parcels already delivered to
// one receiver, newest first.
type GetDeliveryHistoryQuery struct {
	receiverID kernel.UUID
	page       int
	limit      int

	guard guard.ConstructorGuard
}

// NewGetDeliveryHistoryQuery creates a delivery history query.
// Pages are 1-based; a zero limit falls back to the default page size.
func NewGetDeliveryHistoryQuery(receiverID kernel.UUID, page, limit int) (GetDeliveryHistoryQuery, error) {
	if err := receiverID.Validate(); err != nil {
		return GetDeliveryHistoryQuery{}, err
	}
	if page < 1 {
		return GetDeliveryHistoryQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 1 || limit > maxPageLimit {
		return GetDeliveryHistoryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageLimit)
	}

	return GetDeliveryHistoryQuery{
		receiverID: receiverID,
		page:       page,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryHistoryQueryIsNotConstructed if validation fails.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

// ReceiverID returns the receiver whose delivery history is listed.
func (q GetDeliveryHistoryQuery) ReceiverID() kernel.UUID {
	return q.receiverID
}

// Page returns the 1-based page number.
func (q GetDeliveryHistoryQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetDeliveryHistoryQuery) Limit() int {
	return q.limit
}

// GetDeliveryHistoryQueryResponse is one page of a receiver's delivered
// parcels. Total counts all delivered parcels for the receiver.
type GetDeliveryHistoryQueryResponse struct {
	Items []ParcelListItemResponse
	Total int64
}
