package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// PostgreSQLRoleRepository implements Role and grant persistence for PostgreSQL.
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQL Role repository.
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{db: db}
}

// Create inserts a Role unless one with the same code exists.
func (p *PostgreSQLRoleRepository) Create(ctx context.Context, role *rbacDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO roles (id, code, name, description, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (code) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Code, role.Name, role.Description, role.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByCode retrieves a Role by code.
func (p *PostgreSQLRoleRepository) GetByCode(ctx context.Context, code string) (*rbacDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, code, name, description, created_at FROM roles WHERE code = $1`

	var role rbacDomain.Role
	err := querier.QueryRowContext(ctx, query, code).Scan(
		&role.ID,
		&role.Code,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rbacDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}
	return &role, nil
}

// List returns roles ordered by code.
func (p *PostgreSQLRoleRepository) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, code, name, description, created_at FROM roles
			  ORDER BY code ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]*rbacDomain.Role, 0)
	for rows.Next() {
		var role rbacDomain.Role
		if err := rows.Scan(&role.ID, &role.Code, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// ListByPrincipal returns the roles granted to a principal.
func (p *PostgreSQLRoleRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) ([]rbacDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT r.id, r.code, r.name, r.description, r.created_at
			  FROM roles r
			  INNER JOIN principal_roles pr ON pr.role_id = r.id
			  WHERE pr.principal_id = $1
			  ORDER BY r.code ASC`

	rows, err := querier.QueryContext(ctx, query, principalID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principal roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]rbacDomain.Role, 0)
	for rows.Next() {
		var role rbacDomain.Role
		if err := rows.Scan(&role.ID, &role.Code, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principal roles")
	}

	return roles, nil
}

// Grant links a principal to a role.
func (p *PostgreSQLRoleRepository) Grant(ctx context.Context, grant *rbacDomain.RoleGrant) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO principal_roles (principal_id, role_id, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (principal_id, role_id) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, grant.PrincipalID, grant.RoleID, grant.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to grant role")
	}
	return nil
}

// GrantPermission links a role to a permission.
func (p *PostgreSQLRoleRepository) GrantPermission(
	ctx context.Context,
	grant *rbacDomain.RolePermissionGrant,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO role_permissions (role_id, permission_id, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (role_id, permission_id) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, grant.RoleID, grant.PermissionID, grant.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to grant permission")
	}
	return nil
}
