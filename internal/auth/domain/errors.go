package domain

import (
	"github.com/allisson/gatekeeper/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidCredentials indicates an unknown username or a wrong password. Both cases
	// share one error so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid username or password")

	// ErrInvalidRefreshToken indicates an unknown, revoked or expired refresh token.
	ErrInvalidRefreshToken = errors.Wrap(errors.ErrUnauthorized, "invalid refresh token")

	// ErrInvalidAccessToken indicates a missing, malformed, badly signed or expired access token.
	ErrInvalidAccessToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrMissingAuthorization indicates the Authorization header is absent or not a Bearer credential.
	ErrMissingAuthorization = errors.Wrap(errors.ErrUnauthorized, "missing or invalid authorization header")

	// ErrPrincipalDisabled indicates the principal exists but may not authenticate.
	ErrPrincipalDisabled = errors.Wrap(errors.ErrForbidden, "account is disabled")

	// ErrPrincipalLocked indicates the principal exists but is locked.
	ErrPrincipalLocked = errors.Wrap(errors.ErrLocked, "account is locked")

	// ErrRefreshTokenNotFound indicates no ledger entry matches the token hash.
	ErrRefreshTokenNotFound = errors.Wrap(errors.ErrNotFound, "refresh token not found")

	// ErrUserNotFound indicates a valid access token names no live principal.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")
)
