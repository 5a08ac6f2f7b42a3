// Package http provides the session endpoints and the authentication, authorization and
// rate limiting middleware shared by every protected route.
package http

import (
	"context"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// identityKey is a context key type for storing the authenticated identity.
type identityKey struct{}

// WithIdentity stores an authenticated identity in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the authenticated identity from the context.
// Returns (identity, true) if one is present, or (nil, false) if none was set.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	if !ok || identity == nil || identity.Principal == nil {
		return nil, false
	}
	return identity, true
}

// AuthenticatedUsername returns the username of the authenticated principal, if any.
// Its signature matches the identity resolver expected by the audit interceptor.
func AuthenticatedUsername(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok || identity.Principal.Username == "" {
		return "", false
	}
	return identity.Principal.Username, true
}
