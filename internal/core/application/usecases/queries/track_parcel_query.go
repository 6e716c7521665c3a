// Package queries contains read-only operations in the CQRS architecture.
// Query handlers go straight to the database and return flat response types;
// they never load or mutate aggregates.
package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrTrackParcelQueryIsNotConstructed = errors.New(
		"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
	)
)

// TrackParcelQuery retrieves the public tracking view for one parcel.
// This is the unauthenticated projection: it carries the tracking id, the
// parcel type, the destination city, the current status, and the status log,
// and deliberately omits internal identifiers and receiver contact details.
//
// Example:
//
//	trackingID, _ := kernel.TrackingIDFromString("TRK-20250314-000042")
//	query, _ := NewTrackParcelQuery(trackingID)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s is %s\n", view.TrackingID, view.CurrentStatus)
type TrackParcelQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a query for the given tracking identifier.
func NewTrackParcelQuery(trackingID kernel.TrackingID) (TrackParcelQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackParcelQueryIsNotConstructed if validation fails.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackingID returns the tracking identifier to look up.
func (q TrackParcelQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}

// StatusLogResponse is one public status log entry. The acting user's
// identity is reduced to their role; names and ids stay internal.
type StatusLogResponse struct {
	Status        string
	Timestamp     time.Time
	UpdatedByRole string
	Note          string
}

// TrackParcelQueryResponse is the externally-facing tracking view.
type TrackParcelQueryResponse struct {
	TrackingID      string
	ParcelType      string
	DestinationCity string
	CurrentStatus   string
	IsBlocked       bool
	CreatedAt       time.Time
	StatusLogs      []StatusLogResponse
}
