package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetSenderParcelsQueryIsNotConstructed = errors.New(
		"GetSenderParcelsQuery must be created via NewGetSenderParcelsQuery constructor",
	)
)

// GetSenderParcelsQuery retrieves every parcel created by one sender,
// newest first. Backs the sender's "my parcels" listing.
type GetSenderParcelsQuery struct {
	senderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSenderParcelsQuery creates a listing query for the given sender.
func NewGetSenderParcelsQuery(senderID kernel.UUID) (GetSenderParcelsQuery, error) {
	if err := senderID.Validate(); err != nil {
		return GetSenderParcelsQuery{}, err
	}

	return GetSenderParcelsQuery{
		senderID: senderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSenderParcelsQueryIsNotConstructed if validation fails.
func (q GetSenderParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetSenderParcelsQueryIsNotConstructed)
}

// SenderID returns the sender whose parcels are listed.
func (q GetSenderParcelsQuery) SenderID() kernel.UUID {
	return q.senderID
}
