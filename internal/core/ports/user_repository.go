package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// UserRepository defines the read-only persistence contract for the user
// directory. Accounts are written by the identity provider, never here.
type UserRepository interface {
	// Get retrieves a user by its unique identifier.
	// Returns ObjectNotFoundError if no user exists with the given id.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
