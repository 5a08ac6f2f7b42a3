package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// refreshTokenService implements RefreshTokenService using SHA-256 for token hashing.
type refreshTokenService struct{}

// NewRefreshTokenService creates a new RefreshTokenService.
func NewRefreshTokenService() RefreshTokenService {
	return &refreshTokenService{}
}

// GenerateToken creates a base64url encoded random token and its hash.
func (r *refreshTokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	randomBytes := make([]byte, authDomain.RefreshTokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = base64.URLEncoding.EncodeToString(randomBytes)
	return plainToken, r.HashToken(plainToken), nil
}

// HashToken hashes a plain token using SHA-256.
func (r *refreshTokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}
