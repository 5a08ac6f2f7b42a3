package usecase

import (
	"context"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	auditUseCase "github.com/allisson/gatekeeper/internal/audit/usecase"
)

// ActionLogin is the audit action recorded for every login attempt.
const ActionLogin = "LOGIN"

// sessionUseCaseWithAudit audits login attempts.
type sessionUseCaseWithAudit struct {
	SessionUseCase
	interceptor auditUseCase.Interceptor
}

// NewSessionUseCaseWithAudit wraps a SessionUseCase so that Login is audited. The login
// input carries the attempted username, which becomes the actor of unauthenticated attempts.
func NewSessionUseCaseWithAudit(useCase SessionUseCase, interceptor auditUseCase.Interceptor) SessionUseCase {
	return &sessionUseCaseWithAudit{SessionUseCase: useCase, interceptor: interceptor}
}

func (s *sessionUseCaseWithAudit) Login(
	ctx context.Context,
	input authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	return auditUseCase.Invoke(ctx, s.interceptor, ActionLogin, []any{input},
		func(ctx context.Context) (*authDomain.TokenPair, error) {
			return s.SessionUseCase.Login(ctx, input)
		})
}
