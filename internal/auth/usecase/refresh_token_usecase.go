package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// refreshTokenUseCase implements RefreshTokenUseCase.
type refreshTokenUseCase struct {
	txManager        database.TxManager
	refreshTokenRepo RefreshTokenRepository
	principalRepo    PrincipalRepository
	tokenService     authService.RefreshTokenService
	expiration       time.Duration
	now              func() time.Time
}

// NewRefreshTokenUseCase creates a RefreshTokenUseCase whose tokens live for expiration.
func NewRefreshTokenUseCase(
	txManager database.TxManager,
	refreshTokenRepo RefreshTokenRepository,
	principalRepo PrincipalRepository,
	tokenService authService.RefreshTokenService,
	expiration time.Duration,
) RefreshTokenUseCase {
	return &refreshTokenUseCase{
		txManager:        txManager,
		refreshTokenRepo: refreshTokenRepo,
		principalRepo:    principalRepo,
		tokenService:     tokenService,
		expiration:       expiration,
		now:              time.Now,
	}
}

// Issue generates and persists a refresh token. One principal may hold any number of
// concurrently valid tokens.
func (r *refreshTokenUseCase) Issue(
	ctx context.Context,
	principal *rbacDomain.Principal,
) (*authDomain.IssuedRefreshToken, error) {
	plainToken, tokenHash, err := r.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	token := &authDomain.RefreshToken{
		ID:          uuid.Must(uuid.NewV7()),
		TokenHash:   tokenHash,
		PrincipalID: principal.ID,
		ExpiresAt:   now.Add(r.expiration),
		Revoked:     false,
		CreatedAt:   now,
	}

	if err := r.refreshTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssuedRefreshToken{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// Redeem looks the token up by hash and returns its live owner.
func (r *refreshTokenUseCase) Redeem(ctx context.Context, plainToken string) (*rbacDomain.Principal, error) {
	if strings.TrimSpace(plainToken) == "" {
		return nil, authDomain.ErrInvalidRefreshToken
	}

	var principal *rbacDomain.Principal
	err := r.txManager.WithReadOnlyTx(ctx, func(ctx context.Context) error {
		token, err := r.refreshTokenRepo.GetByTokenHash(ctx, r.tokenService.HashToken(plainToken))
		if err != nil {
			if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
				return authDomain.ErrInvalidRefreshToken
			}
			return err
		}

		if !token.IsUsable(r.now().UTC()) {
			return authDomain.ErrInvalidRefreshToken
		}

		principal, err = r.principalRepo.GetByID(ctx, token.PrincipalID)
		if err != nil {
			if errors.Is(err, rbacDomain.ErrPrincipalNotFound) {
				return authDomain.ErrInvalidRefreshToken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if principal.Locked {
		return nil, authDomain.ErrPrincipalLocked
	}
	if !principal.Enabled {
		return nil, authDomain.ErrPrincipalDisabled
	}

	return principal, nil
}

// Revoke marks the token revoked. Unknown tokens yield ErrRefreshTokenNotFound.
func (r *refreshTokenUseCase) Revoke(ctx context.Context, plainToken string) error {
	if strings.TrimSpace(plainToken) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "refresh token is required")
	}
	return r.refreshTokenRepo.Revoke(ctx, r.tokenService.HashToken(plainToken), r.now().UTC())
}

// CleanExpired deletes tokens whose expiry is more than days in the past.
func (r *refreshTokenUseCase) CleanExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be a non-negative number")
	}

	cutoff := r.now().UTC().AddDate(0, 0, -days)
	return r.refreshTokenRepo.DeleteExpired(ctx, cutoff, dryRun)
}
