package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService with the Moderate Argon2id policy.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passwordService{hasher: hasher}
}

// Hash returns the PHC-encoded Argon2id hash of password.
func (p *passwordService) Hash(password []byte) (string, error) {
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify compares password against hash in constant time.
func (p *passwordService) Verify(password []byte, hash string) (bool, error) {
	ok, err := p.hasher.Verify(password, hash)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to verify password")
	}
	return ok, nil
}
