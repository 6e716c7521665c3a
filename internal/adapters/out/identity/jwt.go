// Package identity resolves request credentials into actors.
// Tokens are issued by an external identity service; this adapter only
// validates them and extracts the actor identity baked into the claims.
package identity

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// actorClaims are the claims the identity service puts into access tokens.
// The subject is the account id; name and role describe the actor.
type actorClaims struct {
	jwt.RegisteredClaims
	DisplayName string `json:"name"`
	Role        string `json:"role"`
}

// JWTIdentityProvider validates HS256 access tokens against a shared secret.
type JWTIdentityProvider struct {
	secret []byte
	leeway time.Duration
}

// NewJWTIdentityProvider creates a provider for the given signing secret.
func NewJWTIdentityProvider(secret []byte, leeway time.Duration) *JWTIdentityProvider {
	return &JWTIdentityProvider{secret: secret, leeway: leeway}
}

// Resolve validates the token and returns the actor it was issued to.
// Any parse or claim failure maps to UnauthenticatedError so callers never
// leak token internals to clients.
func (p *JWTIdentityProvider) Resolve(_ context.Context, credential string) (actor.Actor, error) {
	if credential == "" {
		return actor.Actor{}, errs.NewUnauthenticatedError()
	}

	claims := &actorClaims{}
	token, err := jwt.ParseWithClaims(credential, claims,
		func(*jwt.Token) (interface{}, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(p.leeway),
	)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause(err)
	}
	if !token.Valid {
		return actor.Actor{}, errs.NewUnauthenticatedError()
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause(fmt.Errorf("missing sub claim"))
	}

	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause(err)
	}

	role, err := actor.RoleFromString(claims.Role)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause(err)
	}

	resolved, err := actor.NewActor(id, claims.DisplayName, role)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause(err)
	}
	return resolved, nil
}
