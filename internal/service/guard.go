package service

import (
	"context"

	"github.com/google/uuid"
)

// accountIDContextKey is an unexported type for the authenticated-account
// context key, so no other package can collide with it.
type accountIDContextKey struct{}

// WithAccountID returns a copy of ctx carrying the authenticated account
// ID. The transport layer calls this after verifying a token; the services
// below never read identity from anywhere else.
func WithAccountID(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDContextKey{}, accountID)
}

// AccountIDFromContext extracts the authenticated account ID from ctx.
// The second return value reports whether an ID was present.
func AccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDContextKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireAuthenticated returns the authenticated account ID from ctx, or
// ErrNotLoggedIn when none is present. Every mutating operation on owned
// resources calls this before touching the stores.
func RequireAuthenticated(ctx context.Context) (uuid.UUID, error) {
	id, ok := AccountIDFromContext(ctx)
	if !ok {
		return uuid.Nil, ErrNotLoggedIn
	}
	return id, nil
}

// RequireOwner returns ErrNotAuthorized when the authenticated account
// does not own the resource.
func RequireOwner(accountID, resourceOwnerID uuid.UUID) error {
	if accountID != resourceOwnerID {
		return ErrNotAuthorized
	}
	return nil
}
