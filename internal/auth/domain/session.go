package domain

import (
	"strings"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Username string
	Password string //nolint:gosec // plaintext only in transit to the hasher
}

// GetUsername exposes the attempted username so a failed login is attributed to it.
func (i LoginInput) GetUsername() string {
	return i.Username
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// NewTokenPair builds a Bearer token pair.
func NewTokenPair(accessToken, refreshToken string) *TokenPair {
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    TokenTypeBearer,
	}
}

// MeOutput describes the authenticated principal. Roles hold bare role codes, without
// the ROLE_ prefix.
type MeOutput struct {
	Username    string
	Email       string
	Roles       []string
	Permissions []string
}

// Identity is an authenticated principal together with its resolved authorities.
type Identity struct {
	Principal   *rbacDomain.Principal
	Authorities rbacDomain.Authorities
}

// ParseBearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func ParseBearerToken(header string) (string, error) {
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", ErrMissingAuthorization
	}

	token := strings.TrimSpace(header[len(BearerPrefix):])
	if token == "" {
		return "", ErrMissingAuthorization
	}
	return token, nil
}
