// Package mocks provides testify mocks for the authentication use cases, repositories
// and services.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// MockRefreshTokenRepository is a mock implementation of RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenHash, revokedAt)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuthenticator is a mock implementation of Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(
	ctx context.Context,
	username, password string,
) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

// MockRefreshTokenUseCase is a mock implementation of RefreshTokenUseCase.
type MockRefreshTokenUseCase struct {
	mock.Mock
}

func (m *MockRefreshTokenUseCase) Issue(
	ctx context.Context,
	principal *rbacDomain.Principal,
) (*authDomain.IssuedRefreshToken, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedRefreshToken), args.Error(1)
}

func (m *MockRefreshTokenUseCase) Redeem(ctx context.Context, plainToken string) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

func (m *MockRefreshTokenUseCase) Revoke(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

func (m *MockRefreshTokenUseCase) CleanExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionUseCase is a mock implementation of SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Login(ctx context.Context, input authDomain.LoginInput) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *MockSessionUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *MockSessionUseCase) Me(ctx context.Context, authorizationHeader string) (*authDomain.MeOutput, error) {
	args := m.Called(ctx, authorizationHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.MeOutput), args.Error(1)
}

func (m *MockSessionUseCase) Identify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

// MockAccessTokenService is a mock implementation of AccessTokenService.
type MockAccessTokenService struct {
	mock.Mock
}

func (m *MockAccessTokenService) Issue(subject string, claims map[string]any) (string, error) {
	args := m.Called(subject, claims)
	return args.String(0), args.Error(1)
}

func (m *MockAccessTokenService) Validate(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

func (m *MockAccessTokenService) Subject(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// MockRefreshTokenService is a mock implementation of RefreshTokenService.
type MockRefreshTokenService struct {
	mock.Mock
}

func (m *MockRefreshTokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockRefreshTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}
