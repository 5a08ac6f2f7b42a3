package usecase

import (
	"context"

	"github.com/google/uuid"

	auditUseCase "github.com/allisson/gatekeeper/internal/audit/usecase"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// Audited principal operations.
const (
	ActionCreateAdmin = "USER_CREATE_ADMIN"
	ActionDelete      = "USER_DELETE"
	ActionHardDelete  = "USER_HARD_DELETE"
)

// principalUseCaseWithAudit records an audit entry for every mutating principal operation.
type principalUseCaseWithAudit struct {
	PrincipalUseCase
	interceptor auditUseCase.Interceptor
}

// NewPrincipalUseCaseWithAudit wraps a PrincipalUseCase so that CreateAdmin, Delete and Purge
// are audited. Reads pass through untouched.
func NewPrincipalUseCaseWithAudit(useCase PrincipalUseCase, interceptor auditUseCase.Interceptor) PrincipalUseCase {
	return &principalUseCaseWithAudit{PrincipalUseCase: useCase, interceptor: interceptor}
}

func (p *principalUseCaseWithAudit) CreateAdmin(
	ctx context.Context,
	input rbacDomain.CreatePrincipalInput,
) (*rbacDomain.Principal, error) {
	return auditUseCase.Invoke(ctx, p.interceptor, ActionCreateAdmin, []any{input},
		func(ctx context.Context) (*rbacDomain.Principal, error) {
			return p.PrincipalUseCase.CreateAdmin(ctx, input)
		})
}

func (p *principalUseCaseWithAudit) Delete(ctx context.Context, principalID uuid.UUID) error {
	return p.interceptor.Intercept(ctx, ActionDelete, []any{principalID}, func(ctx context.Context) error {
		return p.PrincipalUseCase.Delete(ctx, principalID)
	})
}

func (p *principalUseCaseWithAudit) Purge(ctx context.Context, principalID uuid.UUID) error {
	return p.interceptor.Intercept(ctx, ActionHardDelete, []any{principalID}, func(ctx context.Context) error {
		return p.PrincipalUseCase.Purge(ctx, principalID)
	})
}
