// Package usecase implements credential verification, the refresh token ledger and the
// session flows (login, refresh, me) built on them.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// RefreshTokenRepository defines persistence operations for the refresh token ledger.
type RefreshTokenRepository interface {
	// Create stores a new ledger entry.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// GetByTokenHash retrieves an entry by token hash. Returns ErrRefreshTokenNotFound if missing.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.RefreshToken, error)

	// Revoke marks an entry revoked. Returns ErrRefreshTokenNotFound if missing.
	Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error

	// DeleteExpired removes entries that expired before olderThan, or only counts them with dryRun.
	DeleteExpired(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// PrincipalRepository is the read side of principal persistence used by authentication.
type PrincipalRepository interface {
	GetByID(ctx context.Context, principalID uuid.UUID) (*rbacDomain.Principal, error)
	GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error)
}

// Authenticator verifies username and password credentials.
type Authenticator interface {
	// Authenticate returns the principal owning the credentials. Unknown usernames and wrong
	// passwords both yield ErrInvalidCredentials; ErrPrincipalLocked and ErrPrincipalDisabled
	// report account state.
	Authenticate(ctx context.Context, username, password string) (*rbacDomain.Principal, error)
}

// RefreshTokenUseCase manages the refresh token ledger.
type RefreshTokenUseCase interface {
	// Issue creates a refresh token for the principal and persists its hash.
	Issue(ctx context.Context, principal *rbacDomain.Principal) (*authDomain.IssuedRefreshToken, error)

	// Redeem returns the principal owning a usable refresh token. The token stays valid:
	// refresh tokens are not rotated.
	Redeem(ctx context.Context, plainToken string) (*rbacDomain.Principal, error)

	// Revoke permanently invalidates a refresh token.
	Revoke(ctx context.Context, plainToken string) error

	// CleanExpired removes tokens that expired more than days ago, or only counts them with dryRun.
	CleanExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}

// SessionUseCase orchestrates login, refresh and identity lookups.
type SessionUseCase interface {
	// Login verifies credentials and returns a fresh access token and refresh token.
	Login(ctx context.Context, input authDomain.LoginInput) (*authDomain.TokenPair, error)

	// Refresh redeems a refresh token for a new access token. The same refresh token is returned.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// Me describes the principal named by the Bearer token in authorizationHeader.
	Me(ctx context.Context, authorizationHeader string) (*authDomain.MeOutput, error)

	// Identify resolves an access token into the live principal and its current authorities.
	Identify(ctx context.Context, accessToken string) (*authDomain.Identity, error)
}
