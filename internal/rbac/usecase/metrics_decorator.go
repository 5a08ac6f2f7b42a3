package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/metrics"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

const metricsDomain = "rbac"

func recordMetrics(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	metrics.Observe(ctx, m, metricsDomain, operation, start, err)
}

// principalUseCaseWithMetrics decorates PrincipalUseCase with metrics instrumentation.
type principalUseCaseWithMetrics struct {
	next    PrincipalUseCase
	metrics metrics.BusinessMetrics
}

// NewPrincipalUseCaseWithMetrics wraps a PrincipalUseCase with metrics recording.
func NewPrincipalUseCaseWithMetrics(useCase PrincipalUseCase, m metrics.BusinessMetrics) PrincipalUseCase {
	return &principalUseCaseWithMetrics{next: useCase, metrics: m}
}

func (p *principalUseCaseWithMetrics) CreateAdmin(
	ctx context.Context,
	input rbacDomain.CreatePrincipalInput,
) (*rbacDomain.Principal, error) {
	start := time.Now()
	principal, err := p.next.CreateAdmin(ctx, input)
	recordMetrics(ctx, p.metrics, "create_admin", start, err)
	return principal, err
}

func (p *principalUseCaseWithMetrics) Get(ctx context.Context, principalID uuid.UUID) (*rbacDomain.Principal, error) {
	start := time.Now()
	principal, err := p.next.Get(ctx, principalID)
	recordMetrics(ctx, p.metrics, "principal_get", start, err)
	return principal, err
}

func (p *principalUseCaseWithMetrics) GetByUsername(
	ctx context.Context,
	username string,
) (*rbacDomain.Principal, error) {
	start := time.Now()
	principal, err := p.next.GetByUsername(ctx, username)
	recordMetrics(ctx, p.metrics, "principal_get", start, err)
	return principal, err
}

func (p *principalUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*rbacDomain.Principal, error) {
	start := time.Now()
	principals, err := p.next.List(ctx, offset, limit)
	recordMetrics(ctx, p.metrics, "principal_list", start, err)
	return principals, err
}

func (p *principalUseCaseWithMetrics) Delete(ctx context.Context, principalID uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, principalID)
	recordMetrics(ctx, p.metrics, "principal_delete", start, err)
	return err
}

func (p *principalUseCaseWithMetrics) Purge(ctx context.Context, principalID uuid.UUID) error {
	start := time.Now()
	err := p.next.Purge(ctx, principalID)
	recordMetrics(ctx, p.metrics, "principal_purge", start, err)
	return err
}

// permissionResolverWithMetrics decorates PermissionResolver with metrics instrumentation.
type permissionResolverWithMetrics struct {
	next    PermissionResolver
	metrics metrics.BusinessMetrics
}

// NewPermissionResolverWithMetrics wraps a PermissionResolver with metrics recording.
func NewPermissionResolverWithMetrics(resolver PermissionResolver, m metrics.BusinessMetrics) PermissionResolver {
	return &permissionResolverWithMetrics{next: resolver, metrics: m}
}

func (p *permissionResolverWithMetrics) RolesOf(
	ctx context.Context,
	principalID uuid.UUID,
) ([]rbacDomain.Role, error) {
	start := time.Now()
	roles, err := p.next.RolesOf(ctx, principalID)
	recordMetrics(ctx, p.metrics, "resolve_roles", start, err)
	return roles, err
}

func (p *permissionResolverWithMetrics) PermissionsOf(
	ctx context.Context,
	roles []rbacDomain.Role,
) ([]rbacDomain.Permission, error) {
	start := time.Now()
	permissions, err := p.next.PermissionsOf(ctx, roles)
	recordMetrics(ctx, p.metrics, "resolve_permissions", start, err)
	return permissions, err
}

func (p *permissionResolverWithMetrics) AuthorityCodes(ctx context.Context, principalID uuid.UUID) ([]string, error) {
	start := time.Now()
	codes, err := p.next.AuthorityCodes(ctx, principalID)
	recordMetrics(ctx, p.metrics, "resolve_authorities", start, err)
	return codes, err
}

func (p *permissionResolverWithMetrics) Resolve(
	ctx context.Context,
	principalID uuid.UUID,
) (rbacDomain.Authorities, error) {
	start := time.Now()
	authorities, err := p.next.Resolve(ctx, principalID)
	recordMetrics(ctx, p.metrics, "resolve_authorities", start, err)
	return authorities, err
}
