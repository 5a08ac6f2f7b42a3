package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	authenticator       Authenticator
	accessTokenService  authService.AccessTokenService
	refreshTokenUseCase RefreshTokenUseCase
	principalRepo       PrincipalRepository
	permissionResolver  rbacUseCase.PermissionResolver
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	authenticator Authenticator,
	accessTokenService authService.AccessTokenService,
	refreshTokenUseCase RefreshTokenUseCase,
	principalRepo PrincipalRepository,
	permissionResolver rbacUseCase.PermissionResolver,
) SessionUseCase {
	return &sessionUseCase{
		authenticator:       authenticator,
		accessTokenService:  accessTokenService,
		refreshTokenUseCase: refreshTokenUseCase,
		principalRepo:       principalRepo,
		permissionResolver:  permissionResolver,
	}
}

// Login authenticates the credentials, then issues an access token and a new refresh token.
func (s *sessionUseCase) Login(ctx context.Context, input authDomain.LoginInput) (*authDomain.TokenPair, error) {
	principal, err := s.authenticator.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.accessTokenService.Issue(principal.Username, nil)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.refreshTokenUseCase.Issue(ctx, principal)
	if err != nil {
		return nil, err
	}

	return authDomain.NewTokenPair(accessToken, refreshToken.PlainToken), nil
}

// Refresh issues a new access token for the owner of refreshToken and hands the same
// refresh token back.
func (s *sessionUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	principal, err := s.refreshTokenUseCase.Redeem(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.accessTokenService.Issue(principal.Username, nil)
	if err != nil {
		return nil, err
	}

	return authDomain.NewTokenPair(accessToken, refreshToken), nil
}

// Me returns the username, email, role codes and permission codes of the token's subject.
// A valid token whose subject no longer exists yields ErrUserNotFound.
func (s *sessionUseCase) Me(ctx context.Context, authorizationHeader string) (*authDomain.MeOutput, error) {
	token, err := authDomain.ParseBearerToken(authorizationHeader)
	if err != nil {
		return nil, err
	}

	username, err := s.subject(token)
	if err != nil {
		return nil, err
	}

	principal, err := s.principalRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rbacDomain.ErrPrincipalNotFound) {
			return nil, authDomain.ErrUserNotFound
		}
		return nil, err
	}

	authorities, err := s.permissionResolver.Resolve(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	return &authDomain.MeOutput{
		Username:    principal.Username,
		Email:       principal.Email,
		Roles:       authorities.RoleCodes(),
		Permissions: authorities.PermissionCodes(),
	}, nil
}

// Identify is used on every authenticated request. Unlike Me, a vanished subject is an
// authentication failure.
func (s *sessionUseCase) Identify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	username, err := s.subject(accessToken)
	if err != nil {
		return nil, err
	}

	principal, err := s.principalRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rbacDomain.ErrPrincipalNotFound) {
			return nil, authDomain.ErrInvalidAccessToken
		}
		return nil, err
	}

	if principal.Locked {
		return nil, authDomain.ErrPrincipalLocked
	}
	if !principal.Enabled {
		return nil, authDomain.ErrPrincipalDisabled
	}

	authorities, err := s.permissionResolver.Resolve(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	return &authDomain.Identity{Principal: principal, Authorities: authorities}, nil
}

// subject guards Subject behind Validate.
func (s *sessionUseCase) subject(token string) (string, error) {
	if !s.accessTokenService.Validate(token) {
		return "", authDomain.ErrInvalidAccessToken
	}
	return s.accessTokenService.Subject(token)
}
