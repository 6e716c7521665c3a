package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/actor"
)

// IdentityProvider resolves the authenticated actor behind a request
// credential. Account management is owned externally; this port only turns
// a bearer credential into an Actor or fails with UnauthenticatedError.
type IdentityProvider interface {
	// Resolve validates the credential and returns the actor it belongs to.
	Resolve(ctx context.Context, credential string) (actor.Actor, error)
}
