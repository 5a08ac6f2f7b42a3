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

// MySQLRoleRepository implements Role and grant persistence for MySQL.
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQL Role repository.
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{db: db}
}

// Create inserts a Role unless one with the same code exists.
func (m *MySQLRoleRepository) Create(ctx context.Context, role *rbacDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	id, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `INSERT IGNORE INTO roles (id, code, name, description, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, id, role.Code, role.Name, role.Description, role.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByCode retrieves a Role by code.
func (m *MySQLRoleRepository) GetByCode(ctx context.Context, code string) (*rbacDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, code, name, description, created_at FROM roles WHERE code = ?`

	role, err := scanMySQLRole(querier.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rbacDomain.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// List returns roles ordered by code.
func (m *MySQLRoleRepository) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, code, name, description, created_at FROM roles
			  ORDER BY code ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]*rbacDomain.Role, 0)
	for rows.Next() {
		role, err := scanMySQLRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// ListByPrincipal returns the roles granted to a principal.
func (m *MySQLRoleRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) ([]rbacDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := principalID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `SELECT r.id, r.code, r.name, r.description, r.created_at
			  FROM roles r
			  INNER JOIN principal_roles pr ON pr.role_id = r.id
			  WHERE pr.principal_id = ?
			  ORDER BY r.code ASC`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principal roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]rbacDomain.Role, 0)
	for rows.Next() {
		role, err := scanMySQLRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principal roles")
	}

	return roles, nil
}

// Grant links a principal to a role.
func (m *MySQLRoleRepository) Grant(ctx context.Context, grant *rbacDomain.RoleGrant) error {
	querier := database.GetTx(ctx, m.db)

	principalID, err := grant.PrincipalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}
	roleID, err := grant.RoleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `INSERT IGNORE INTO principal_roles (principal_id, role_id, created_at) VALUES (?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, principalID, roleID, grant.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to grant role")
	}
	return nil
}

// GrantPermission links a role to a permission.
func (m *MySQLRoleRepository) GrantPermission(
	ctx context.Context,
	grant *rbacDomain.RolePermissionGrant,
) error {
	querier := database.GetTx(ctx, m.db)

	roleID, err := grant.RoleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}
	permissionID, err := grant.PermissionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission id")
	}

	query := `INSERT IGNORE INTO role_permissions (role_id, permission_id, created_at) VALUES (?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, roleID, permissionID, grant.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to grant permission")
	}
	return nil
}

func scanMySQLRole(row scanner) (rbacDomain.Role, error) {
	var role rbacDomain.Role
	var idBytes []byte

	if err := row.Scan(&idBytes, &role.Code, &role.Name, &role.Description, &role.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return role, err
		}
		return role, apperrors.Wrap(err, "failed to scan role")
	}

	if err := role.ID.UnmarshalBinary(idBytes); err != nil {
		return role, apperrors.Wrap(err, "failed to unmarshal role id")
	}
	return role, nil
}
