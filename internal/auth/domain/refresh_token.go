package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a ledger entry for an opaque long-lived token. Only the SHA-256 hash of
// the token is persisted.
type RefreshToken struct {
	ID          uuid.UUID
	TokenHash   string
	PrincipalID uuid.UUID
	ExpiresAt   time.Time
	Revoked     bool
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

// IsUsable reports whether the token may still be redeemed at now.
func (r *RefreshToken) IsUsable(now time.Time) bool {
	return !r.Revoked && now.Before(r.ExpiresAt)
}

// IssuedRefreshToken is the result of issuing a refresh token. PlainToken is handed to
// the caller once and never stored.
type IssuedRefreshToken struct {
	PlainToken string
	ExpiresAt  time.Time
}
