package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/metrics"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := s.next.Login(ctx, input)
	s.record(ctx, "login", start, err)
	return pair, err
}

// Refresh records metrics for token refreshes.
func (s *sessionUseCaseWithMetrics) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := s.next.Refresh(ctx, refreshToken)
	s.record(ctx, "refresh", start, err)
	return pair, err
}

// Me records metrics for identity lookups.
func (s *sessionUseCaseWithMetrics) Me(ctx context.Context, authorizationHeader string) (*authDomain.MeOutput, error) {
	start := time.Now()
	output, err := s.next.Me(ctx, authorizationHeader)
	s.record(ctx, "me", start, err)
	return output, err
}

// Identify records metrics for request authentication.
func (s *sessionUseCaseWithMetrics) Identify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	start := time.Now()
	identity, err := s.next.Identify(ctx, accessToken)
	s.record(ctx, "identify", start, err)
	return identity, err
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "auth", operation, start, err)
}

// refreshTokenUseCaseWithMetrics decorates RefreshTokenUseCase with metrics instrumentation.
type refreshTokenUseCaseWithMetrics struct {
	next    RefreshTokenUseCase
	metrics metrics.BusinessMetrics
}

// NewRefreshTokenUseCaseWithMetrics wraps a RefreshTokenUseCase with metrics recording.
func NewRefreshTokenUseCaseWithMetrics(useCase RefreshTokenUseCase, m metrics.BusinessMetrics) RefreshTokenUseCase {
	return &refreshTokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *refreshTokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	principal *rbacDomain.Principal,
) (*authDomain.IssuedRefreshToken, error) {
	start := time.Now()
	issued, err := r.next.Issue(ctx, principal)
	r.record(ctx, "refresh_token_issue", start, err)
	return issued, err
}

func (r *refreshTokenUseCaseWithMetrics) Redeem(ctx context.Context, plainToken string) (*rbacDomain.Principal, error) {
	start := time.Now()
	principal, err := r.next.Redeem(ctx, plainToken)
	r.record(ctx, "refresh_token_redeem", start, err)
	return principal, err
}

func (r *refreshTokenUseCaseWithMetrics) Revoke(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := r.next.Revoke(ctx, plainToken)
	r.record(ctx, "refresh_token_revoke", start, err)
	return err
}

func (r *refreshTokenUseCaseWithMetrics) CleanExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := r.next.CleanExpired(ctx, days, dryRun)
	r.record(ctx, "refresh_token_clean_expired", start, err)
	return count, err
}

func (r *refreshTokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, r.metrics, "auth", operation, start, err)
}
