package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetIncomingParcelsQueryIsNotConstructed = errors.New(
		"GetIncomingParcelsQuery must be created via NewGetIncomingParcelsQuery constructor",
	)
)

// GetIncomingParcelsQuery retrieves the parcels a receiver can currently act
// on: REQUESTED parcels either already bound to them or not yet bound to any
// receiver.
type GetIncomingParcelsQuery struct {
	receiverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetIncomingParcelsQuery creates an incoming listing query for the given receiver.
func NewGetIncomingParcelsQuery(receiverID kernel.UUID) (GetIncomingParcelsQuery, error) {
	if err := receiverID.Validate(); err != nil {
		return GetIncomingParcelsQuery{}, err
	}

	return GetIncomingParcelsQuery{
		receiverID: receiverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetIncomingParcelsQueryIsNotConstructed if validation fails.
func (q GetIncomingParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetIncomingParcelsQueryIsNotConstructed)
}

// ReceiverID returns the receiver whose incoming parcels are listed.
func (q GetIncomingParcelsQuery) ReceiverID() kernel.UUID {
	return q.receiverID
}
