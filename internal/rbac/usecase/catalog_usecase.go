package usecase

import (
	"context"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

type roleUseCase struct {
	roleRepo RoleRepository
}

// NewRoleUseCase creates a new RoleUseCase.
func NewRoleUseCase(roleRepo RoleRepository) RoleUseCase {
	return &roleUseCase{roleRepo: roleRepo}
}

func (r *roleUseCase) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Role, error) {
	return r.roleRepo.List(ctx, offset, limit)
}

type permissionUseCase struct {
	permissionRepo PermissionRepository
}

// NewPermissionUseCase creates a new PermissionUseCase.
func NewPermissionUseCase(permissionRepo PermissionRepository) PermissionUseCase {
	return &permissionUseCase{permissionRepo: permissionRepo}
}

func (p *permissionUseCase) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Permission, error) {
	return p.permissionRepo.List(ctx, offset, limit)
}
