package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// PostgreSQLPermissionRepository implements Permission persistence for PostgreSQL.
type PostgreSQLPermissionRepository struct {
	db *sql.DB
}

// NewPostgreSQLPermissionRepository creates a new PostgreSQL Permission repository.
func NewPostgreSQLPermissionRepository(db *sql.DB) *PostgreSQLPermissionRepository {
	return &PostgreSQLPermissionRepository{db: db}
}

// Create inserts a Permission unless one with the same code exists.
func (p *PostgreSQLPermissionRepository) Create(ctx context.Context, permission *rbacDomain.Permission) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO permissions (id, code, description, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (code) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		permission.ID,
		permission.Code,
		permission.Description,
		permission.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetByCode retrieves a Permission by code.
func (p *PostgreSQLPermissionRepository) GetByCode(
	ctx context.Context,
	code string,
) (*rbacDomain.Permission, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, code, description, created_at FROM permissions WHERE code = $1`

	var permission rbacDomain.Permission
	err := querier.QueryRowContext(ctx, query, code).Scan(
		&permission.ID,
		&permission.Code,
		&permission.Description,
		&permission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rbacDomain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission")
	}
	return &permission, nil
}

// List returns permissions ordered by code.
func (p *PostgreSQLPermissionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*rbacDomain.Permission, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, code, description, created_at FROM permissions
			  ORDER BY code ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	permissions := make([]*rbacDomain.Permission, 0)
	for rows.Next() {
		var permission rbacDomain.Permission
		if err := rows.Scan(
			&permission.ID,
			&permission.Code,
			&permission.Description,
			&permission.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}
		permissions = append(permissions, &permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate permissions")
	}

	return permissions, nil
}

// ListByRoles returns the distinct permissions granted to any of the roles.
func (p *PostgreSQLPermissionRepository) ListByRoles(
	ctx context.Context,
	roleIDs []uuid.UUID,
) ([]rbacDomain.Permission, error) {
	permissions := make([]rbacDomain.Permission, 0)
	if len(roleIDs) == 0 {
		return permissions, nil
	}

	querier := database.GetTx(ctx, p.db)

	ids := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		ids = append(ids, id.String())
	}

	query := `SELECT DISTINCT p.id, p.code, p.description, p.created_at
			  FROM permissions p
			  INNER JOIN role_permissions rp ON rp.permission_id = p.id
			  WHERE rp.role_id = ANY($1::uuid[])
			  ORDER BY p.code ASC`

	rows, err := querier.QueryContext(ctx, query, pq.StringArray(ids))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list role permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var permission rbacDomain.Permission
		if err := rows.Scan(
			&permission.ID,
			&permission.Code,
			&permission.Description,
			&permission.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}
		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate role permissions")
	}

	return permissions, nil
}
