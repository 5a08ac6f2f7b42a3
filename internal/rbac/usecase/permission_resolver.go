package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

type permissionResolver struct {
	txManager      database.TxManager
	roleRepo       RoleRepository
	permissionRepo PermissionRepository
}

// NewPermissionResolver creates a PermissionResolver. Results are never cached: a grant
// or revocation is visible to the very next call.
func NewPermissionResolver(
	txManager database.TxManager,
	roleRepo RoleRepository,
	permissionRepo PermissionRepository,
) PermissionResolver {
	return &permissionResolver{
		txManager:      txManager,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

func (p *permissionResolver) RolesOf(ctx context.Context, principalID uuid.UUID) ([]rbacDomain.Role, error) {
	var roles []rbacDomain.Role
	err := p.txManager.WithReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		roles, err = p.roleRepo.ListByPrincipal(ctx, principalID)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to resolve roles")
	}
	return rbacDomain.UniqueRoles(roles), nil
}

func (p *permissionResolver) PermissionsOf(
	ctx context.Context,
	roles []rbacDomain.Role,
) ([]rbacDomain.Permission, error) {
	var permissions []rbacDomain.Permission
	err := p.txManager.WithReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		permissions, err = p.permissionRepo.ListByRoles(ctx, roleIDs(roles))
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to resolve permissions")
	}
	return rbacDomain.UniquePermissions(permissions), nil
}

func (p *permissionResolver) AuthorityCodes(ctx context.Context, principalID uuid.UUID) ([]string, error) {
	authorities, err := p.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return authorities.Codes(), nil
}

// Resolve reads roles and their permissions from one snapshot so a concurrent grant change
// cannot produce a mix of old roles and new permissions.
func (p *permissionResolver) Resolve(ctx context.Context, principalID uuid.UUID) (rbacDomain.Authorities, error) {
	var roles []rbacDomain.Role
	var permissions []rbacDomain.Permission

	err := p.txManager.WithReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		roles, err = p.roleRepo.ListByPrincipal(ctx, principalID)
		if err != nil {
			return err
		}
		permissions, err = p.permissionRepo.ListByRoles(ctx, roleIDs(roles))
		return err
	})
	if err != nil {
		return rbacDomain.Authorities{}, apperrors.Wrap(err, "failed to resolve authorities")
	}

	return rbacDomain.NewAuthorities(roles, permissions), nil
}

func roleIDs(roles []rbacDomain.Role) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(roles))
	ids := make([]uuid.UUID, 0, len(roles))
	for _, role := range roles {
		if _, ok := seen[role.ID]; ok {
			continue
		}
		seen[role.ID] = struct{}{}
		ids = append(ids, role.ID)
	}
	return ids
}
