package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// MySQLPermissionRepository implements Permission persistence for MySQL.
type MySQLPermissionRepository struct {
	db *sql.DB
}

// NewMySQLPermissionRepository creates a new MySQL Permission repository.
func NewMySQLPermissionRepository(db *sql.DB) *MySQLPermissionRepository {
	return &MySQLPermissionRepository{db: db}
}

// Create inserts a Permission unless one with the same code exists.
func (m *MySQLPermissionRepository) Create(ctx context.Context, permission *rbacDomain.Permission) error {
	querier := database.GetTx(ctx, m.db)

	id, err := permission.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission id")
	}

	query := `INSERT IGNORE INTO permissions (id, code, description, created_at) VALUES (?, ?, ?, ?)`

	if _, err := querier.ExecContext(
		ctx,
		query,
		id,
		permission.Code,
		permission.Description,
		permission.CreatedAt,
	); err != nil {
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetByCode retrieves a Permission by code.
func (m *MySQLPermissionRepository) GetByCode(
	ctx context.Context,
	code string,
) (*rbacDomain.Permission, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, code, description, created_at FROM permissions WHERE code = ?`

	permission, err := scanMySQLPermission(querier.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rbacDomain.ErrPermissionNotFound
		}
		return nil, err
	}
	return &permission, nil
}

// List returns permissions ordered by code.
func (m *MySQLPermissionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*rbacDomain.Permission, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, code, description, created_at FROM permissions
			  ORDER BY code ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	permissions := make([]*rbacDomain.Permission, 0)
	for rows.Next() {
		permission, err := scanMySQLPermission(rows)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, &permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate permissions")
	}

	return permissions, nil
}

// ListByRoles returns the distinct permissions granted to any of the roles.
func (m *MySQLPermissionRepository) ListByRoles(
	ctx context.Context,
	roleIDs []uuid.UUID,
) ([]rbacDomain.Permission, error) {
	permissions := make([]rbacDomain.Permission, 0)
	if len(roleIDs) == 0 {
		return permissions, nil
	}

	querier := database.GetTx(ctx, m.db)

	args := make([]any, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		id, err := roleID.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal role id")
		}
		args = append(args, id)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	query := `SELECT DISTINCT p.id, p.code, p.description, p.created_at
			  FROM permissions p
			  INNER JOIN role_permissions rp ON rp.permission_id = p.id
			  WHERE rp.role_id IN (` + placeholders + `)
			  ORDER BY p.code ASC`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list role permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		permission, err := scanMySQLPermission(rows)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate role permissions")
	}

	return permissions, nil
}

func scanMySQLPermission(row scanner) (rbacDomain.Permission, error) {
	var permission rbacDomain.Permission
	var idBytes []byte

	if err := row.Scan(&idBytes, &permission.Code, &permission.Description, &permission.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return permission, err
		}
		return permission, apperrors.Wrap(err, "failed to scan permission")
	}

	if err := permission.ID.UnmarshalBinary(idBytes); err != nil {
		return permission, apperrors.Wrap(err, "failed to unmarshal permission id")
	}
	return permission, nil
}
