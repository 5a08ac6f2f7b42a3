package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// authenticator implements Authenticator against the principal store.
type authenticator struct {
	principalRepo  PrincipalRepository
	passwordHasher rbacUseCase.PasswordHasher
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(principalRepo PrincipalRepository, passwordHasher rbacUseCase.PasswordHasher) Authenticator {
	return &authenticator{
		principalRepo:  principalRepo,
		passwordHasher: passwordHasher,
	}
}

// Authenticate checks account state before the password, so a locked or disabled account
// is reported as such.
func (a *authenticator) Authenticate(
	ctx context.Context,
	username, password string,
) (*rbacDomain.Principal, error) {
	if username == "" || password == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	principal, err := a.principalRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rbacDomain.ErrPrincipalNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if principal.Locked {
		return nil, authDomain.ErrPrincipalLocked
	}
	if !principal.Enabled {
		return nil, authDomain.ErrPrincipalDisabled
	}

	ok, err := a.passwordHasher.Verify([]byte(password), principal.PasswordHash)
	if err != nil || !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	return principal, nil
}
