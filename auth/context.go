// Package auth, as part of the authentication module.
// This file, `context.go`, deals with carrying the authenticated user on the request's
// `context.Context`, the standard Go way to pass request-scoped values across API
// boundaries.
package auth

import (
	"context"
)

// contextKey is an unexported type for context keys, so no other package can collide
// with ours.
type contextKey string

const identityContextKey contextKey = "auth_identity"

// Identity is what the rest of the application knows about the acting user.
type Identity struct {
	UserID   string
	Username string
}

// NewContextWithIdentity returns a copy of ctx carrying id.
func NewContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the authenticated user, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}
