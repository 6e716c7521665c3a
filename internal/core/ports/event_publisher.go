package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
)

// EventPublisher notifies downstream consumers about parcel status changes.
// Publishing happens after the transaction commits; a publish failure must
// not roll back the already-persisted state change.
type EventPublisher interface {
	// PublishStatusChanged emits one event for the latest transition of the
	// given parcel.
	PublishStatusChanged(ctx context.Context, aggregate *parcel.Parcel) error
}
