// Package usecase implements principal lifecycle and permission resolution on top of the
// role-based access control model.
package usecase

import (
	"context"

	"github.com/google/uuid"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// PrincipalRepository defines persistence operations for principals.
// Every read except ExistsByUsername and ExistsByEmail ignores soft-deleted rows.
type PrincipalRepository interface {
	// Create stores a new principal.
	Create(ctx context.Context, principal *rbacDomain.Principal) error

	// GetByID retrieves a live principal. Returns ErrPrincipalNotFound if missing or soft-deleted.
	GetByID(ctx context.Context, principalID uuid.UUID) (*rbacDomain.Principal, error)

	// GetByUsername retrieves a live principal. Returns ErrPrincipalNotFound if missing or soft-deleted.
	GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error)

	// ExistsByUsername reports whether any principal, soft-deleted or not, uses username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether any principal, soft-deleted or not, uses email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns live principals ordered by username.
	List(ctx context.Context, offset, limit int) ([]*rbacDomain.Principal, error)

	// SoftDelete sets deleted_at on a live principal. Returns ErrPrincipalNotFound otherwise.
	SoftDelete(ctx context.Context, principalID uuid.UUID) error

	// HardDelete irreversibly removes the principal row and its role grants, whether or
	// not it was soft-deleted. Returns ErrPrincipalNotFound if no row exists.
	HardDelete(ctx context.Context, principalID uuid.UUID) error
}

// RoleRepository defines persistence operations for roles and their grants.
type RoleRepository interface {
	// Create stores a new role. Creating an existing code is a no-op.
	Create(ctx context.Context, role *rbacDomain.Role) error

	// GetByCode retrieves a role. Returns ErrRoleNotFound if missing.
	GetByCode(ctx context.Context, code string) (*rbacDomain.Role, error)

	// List returns roles ordered by code.
	List(ctx context.Context, offset, limit int) ([]*rbacDomain.Role, error)

	// ListByPrincipal returns every role currently granted to the principal.
	ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]rbacDomain.Role, error)

	// Grant links a principal to a role. Granting an existing edge is a no-op.
	Grant(ctx context.Context, grant *rbacDomain.RoleGrant) error

	// GrantPermission links a role to a permission. Granting an existing edge is a no-op.
	GrantPermission(ctx context.Context, grant *rbacDomain.RolePermissionGrant) error
}

// PermissionRepository defines persistence operations for permissions.
type PermissionRepository interface {
	// Create stores a new permission. Creating an existing code is a no-op.
	Create(ctx context.Context, permission *rbacDomain.Permission) error

	// GetByCode retrieves a permission. Returns ErrPermissionNotFound if missing.
	GetByCode(ctx context.Context, code string) (*rbacDomain.Permission, error)

	// List returns permissions ordered by code.
	List(ctx context.Context, offset, limit int) ([]*rbacDomain.Permission, error)

	// ListByRoles returns the distinct permissions granted to any of the roles.
	ListByRoles(ctx context.Context, roleIDs []uuid.UUID) ([]rbacDomain.Permission, error)
}

// PasswordHasher hashes and verifies principal passwords.
type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, hash string) (bool, error)
}

// PermissionResolver expands a principal's roles into its effective authorities.
// Every call reads the grants afresh inside one read-only transaction.
type PermissionResolver interface {
	// RolesOf returns the roles currently granted to the principal.
	RolesOf(ctx context.Context, principalID uuid.UUID) ([]rbacDomain.Role, error)

	// PermissionsOf returns the permissions reachable from any of the roles, deduplicated
	// by code and independent of the input order.
	PermissionsOf(ctx context.Context, roles []rbacDomain.Role) ([]rbacDomain.Permission, error)

	// AuthorityCodes returns "ROLE_"+code for every role plus every permission code.
	AuthorityCodes(ctx context.Context, principalID uuid.UUID) ([]string, error)

	// Resolve returns both roles and permissions from a single consistent read.
	Resolve(ctx context.Context, principalID uuid.UUID) (rbacDomain.Authorities, error)
}

// PrincipalUseCase manages the principal lifecycle.
type PrincipalUseCase interface {
	// CreateAdmin provisions a principal holding the ADMIN role. Returns ErrUsernameTaken
	// or ErrEmailTaken on conflicts.
	CreateAdmin(ctx context.Context, input rbacDomain.CreatePrincipalInput) (*rbacDomain.Principal, error)

	// Get retrieves a live principal by ID.
	Get(ctx context.Context, principalID uuid.UUID) (*rbacDomain.Principal, error)

	// GetByUsername retrieves a live principal by username.
	GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error)

	// List returns live principals.
	List(ctx context.Context, offset, limit int) ([]*rbacDomain.Principal, error)

	// Delete soft-deletes a principal. The row stays for audit references but every
	// read path stops returning it.
	Delete(ctx context.Context, principalID uuid.UUID) error

	// Purge irreversibly removes a principal, soft-deleted or not.
	Purge(ctx context.Context, principalID uuid.UUID) error
}

// RoleUseCase exposes read access to roles.
type RoleUseCase interface {
	List(ctx context.Context, offset, limit int) ([]*rbacDomain.Role, error)
}

// PermissionUseCase exposes read access to permissions.
type PermissionUseCase interface {
	List(ctx context.Context, offset, limit int) ([]*rbacDomain.Permission, error)
}

// BootstrapUseCase seeds the built-in roles, permissions and administrator.
type BootstrapUseCase interface {
	// Seed creates whatever is missing and leaves existing rows untouched.
	Seed(ctx context.Context, admin rbacDomain.CreatePrincipalInput) error
}
