// Package service provides the cryptographic building blocks of authentication: signed
// access tokens, opaque refresh tokens, password hashing and KMS-protected secrets.
package service

import (
	"context"
)

// AccessTokenService issues and verifies short-lived signed access tokens.
type AccessTokenService interface {
	// Issue signs a token whose subject is the username. Extra claims are embedded as-is
	// but can never override sub, iat, exp or iss.
	Issue(subject string, claims map[string]any) (string, error)

	// Validate reports whether the token is well formed, correctly signed and unexpired.
	// It fails closed and never returns an error.
	Validate(token string) bool

	// Subject returns the username of a valid token, or ErrInvalidAccessToken.
	Subject(token string) (string, error)
}

// RefreshTokenService generates opaque refresh tokens and the hashes the ledger stores.
type RefreshTokenService interface {
	// GenerateToken creates a random token and its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the hex-encoded SHA-256 hash of a plain token.
	HashToken(plainToken string) string
}

// PasswordService hashes and verifies passwords with Argon2id.
type PasswordService interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, hash string) (bool, error)
}

// KMSService seals and opens secrets with an external key management service.
// Ciphertexts travel as standard base64.
type KMSService interface {
	// EncryptSecret seals plaintext with the keeper behind keyURI.
	EncryptSecret(ctx context.Context, keyURI string, plaintext []byte) (string, error)
	// DecryptSecret opens the keeper behind keyURI and decrypts a base64 ciphertext.
	DecryptSecret(ctx context.Context, keyURI string, ciphertext string) ([]byte, error)
}
