package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// TrackingIDGenerator issues unique public tracking identifiers.
// Implementations must never hand out the same identifier twice, including
// across process restarts.
type TrackingIDGenerator interface {
	// Next returns a fresh tracking identifier for a parcel created now.
	Next(ctx context.Context) (kernel.TrackingID, error)
}
