package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

type principalUseCase struct {
	txManager      database.TxManager
	principalRepo  PrincipalRepository
	roleRepo       RoleRepository
	passwordHasher PasswordHasher
}

// NewPrincipalUseCase creates a new PrincipalUseCase.
func NewPrincipalUseCase(
	txManager database.TxManager,
	principalRepo PrincipalRepository,
	roleRepo RoleRepository,
	passwordHasher PasswordHasher,
) PrincipalUseCase {
	return &principalUseCase{
		txManager:      txManager,
		principalRepo:  principalRepo,
		roleRepo:       roleRepo,
		passwordHasher: passwordHasher,
	}
}

// CreateAdmin provisions an enabled principal granted ADMIN plus any extra roles in input.
// Usernames and emails of soft-deleted principals stay reserved.
func (p *principalUseCase) CreateAdmin(
	ctx context.Context,
	input rbacDomain.CreatePrincipalInput,
) (*rbacDomain.Principal, error) {
	passwordHash, err := p.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	principal := &rbacDomain.Principal{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	roleCodes := []string{rbacDomain.RoleAdmin}
	for _, code := range input.RoleCodes {
		if !slices.Contains(roleCodes, code) {
			roleCodes = append(roleCodes, code)
		}
	}

	err = p.txManager.WithTx(ctx, func(ctx context.Context) error {
		exists, err := p.principalRepo.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if exists {
			return rbacDomain.ErrUsernameTaken
		}

		exists, err = p.principalRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if exists {
			return rbacDomain.ErrEmailTaken
		}

		if err := p.principalRepo.Create(ctx, principal); err != nil {
			return err
		}

		for _, code := range roleCodes {
			role, err := p.roleRepo.GetByCode(ctx, code)
			if err != nil {
				return err
			}
			grant := &rbacDomain.RoleGrant{PrincipalID: principal.ID, RoleID: role.ID, CreatedAt: now}
			if err := p.roleRepo.Grant(ctx, grant); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return principal, nil
}

// Get retrieves a live principal by ID.
func (p *principalUseCase) Get(ctx context.Context, principalID uuid.UUID) (*rbacDomain.Principal, error) {
	return p.principalRepo.GetByID(ctx, principalID)
}

// GetByUsername retrieves a live principal by username.
func (p *principalUseCase) GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error) {
	return p.principalRepo.GetByUsername(ctx, username)
}

// List retrieves live principals ordered by username.
func (p *principalUseCase) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Principal, error) {
	return p.principalRepo.List(ctx, offset, limit)
}

// Delete soft-deletes the principal.
func (p *principalUseCase) Delete(ctx context.Context, principalID uuid.UUID) error {
	return p.principalRepo.SoftDelete(ctx, principalID)
}

// Purge removes the principal and its grants for good. Refresh tokens go with it through
// the foreign key; audit records keep the actor name and lose the link.
func (p *principalUseCase) Purge(ctx context.Context, principalID uuid.UUID) error {
	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		return p.principalRepo.HardDelete(ctx, principalID)
	})
}
