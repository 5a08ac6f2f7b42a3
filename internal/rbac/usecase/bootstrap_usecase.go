package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

var builtinRoles = []rbacDomain.Role{
	{Code: rbacDomain.RoleAdmin, Name: "Administrator", Description: "Full access administrator"},
	{Code: rbacDomain.RoleUser, Name: "Standard User", Description: "Read-only / limited access user"},
}

type bootstrapUseCase struct {
	txManager        database.TxManager
	principalRepo    PrincipalRepository
	roleRepo         RoleRepository
	permissionRepo   PermissionRepository
	principalUseCase PrincipalUseCase
}

// NewBootstrapUseCase creates a new BootstrapUseCase. The administrator is created through
// principalUseCase so it goes through the same path, and audit trail, as any other admin.
func NewBootstrapUseCase(
	txManager database.TxManager,
	principalRepo PrincipalRepository,
	roleRepo RoleRepository,
	permissionRepo PermissionRepository,
	principalUseCase PrincipalUseCase,
) BootstrapUseCase {
	return &bootstrapUseCase{
		txManager:        txManager,
		principalRepo:    principalRepo,
		roleRepo:         roleRepo,
		permissionRepo:   permissionRepo,
		principalUseCase: principalUseCase,
	}
}

// Seed grants ADMIN every built-in permission and USER only the *_READ ones, then creates
// the administrator unless a principal with that username already exists.
func (b *bootstrapUseCase) Seed(ctx context.Context, admin rbacDomain.CreatePrincipalInput) error {
	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()

		roles := make(map[string]*rbacDomain.Role, len(builtinRoles))
		for _, builtin := range builtinRoles {
			role := builtin
			role.ID = uuid.Must(uuid.NewV7())
			role.CreatedAt = now
			if err := b.roleRepo.Create(ctx, &role); err != nil {
				return err
			}
			stored, err := b.roleRepo.GetByCode(ctx, role.Code)
			if err != nil {
				return err
			}
			roles[role.Code] = stored
		}

		for _, code := range rbacDomain.BuiltinPermissionCodes() {
			permission := &rbacDomain.Permission{
				ID:          uuid.Must(uuid.NewV7()),
				Code:        code,
				Description: strings.ReplaceAll(code, "_", " "),
				CreatedAt:   now,
			}
			if err := b.permissionRepo.Create(ctx, permission); err != nil {
				return err
			}
			stored, err := b.permissionRepo.GetByCode(ctx, code)
			if err != nil {
				return err
			}

			grantTo := []*rbacDomain.Role{roles[rbacDomain.RoleAdmin]}
			if rbacDomain.IsReadPermission(code) {
				grantTo = append(grantTo, roles[rbacDomain.RoleUser])
			}
			for _, role := range grantTo {
				grant := &rbacDomain.RolePermissionGrant{RoleID: role.ID, PermissionID: stored.ID, CreatedAt: now}
				if err := b.roleRepo.GrantPermission(ctx, grant); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	exists, err := b.principalRepo.ExistsByUsername(ctx, admin.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = b.principalUseCase.CreateAdmin(ctx, admin)
	return err
}
