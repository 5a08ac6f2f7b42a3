// Package repository implements data persistence for principals, roles and permissions.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// PostgreSQL uses native UUID types, MySQL uses BINARY(16) types.
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

const principalColumns = `id, username, email, password_hash, enabled, locked, created_at, updated_at, deleted_at`

// PostgreSQLPrincipalRepository implements Principal persistence for PostgreSQL.
type PostgreSQLPrincipalRepository struct {
	db *sql.DB
}

// NewPostgreSQLPrincipalRepository creates a new PostgreSQL Principal repository.
func NewPostgreSQLPrincipalRepository(db *sql.DB) *PostgreSQLPrincipalRepository {
	return &PostgreSQLPrincipalRepository{db: db}
}

// Create inserts a new Principal. Returns ErrPrincipalExists when a unique index rejects the row.
func (p *PostgreSQLPrincipalRepository) Create(ctx context.Context, principal *rbacDomain.Principal) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO principals (id, username, email, password_hash, enabled, locked, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		principal.ID,
		principal.Username,
		principal.Email,
		principal.PasswordHash,
		principal.Enabled,
		principal.Locked,
		principal.CreatedAt,
		principal.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return rbacDomain.ErrPrincipalExists
		}
		return apperrors.Wrap(err, "failed to create principal")
	}
	return nil
}

// GetByID retrieves a live Principal by ID.
func (p *PostgreSQLPrincipalRepository) GetByID(
	ctx context.Context,
	principalID uuid.UUID,
) (*rbacDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE id = $1 AND deleted_at IS NULL`

	return p.scan(querier.QueryRowContext(ctx, query, principalID))
}

// GetByUsername retrieves a live Principal by username.
func (p *PostgreSQLPrincipalRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*rbacDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE username = $1 AND deleted_at IS NULL`

	return p.scan(querier.QueryRowContext(ctx, query, username))
}

// ExistsByUsername reports whether any principal row uses username.
func (p *PostgreSQLPrincipalRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM principals WHERE username = $1)`
	if err := querier.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check principal username")
	}
	return exists, nil
}

// ExistsByEmail reports whether any principal row uses email.
func (p *PostgreSQLPrincipalRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM principals WHERE email = $1)`
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check principal email")
	}
	return exists, nil
}

// List returns live principals ordered by username.
func (p *PostgreSQLPrincipalRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*rbacDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals
			  WHERE deleted_at IS NULL
			  ORDER BY username ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principals")
	}
	defer func() {
		_ = rows.Close()
	}()

	principals := make([]*rbacDomain.Principal, 0)
	for rows.Next() {
		principal, err := p.scan(rows)
		if err != nil {
			return nil, err
		}
		principals = append(principals, principal)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principals")
	}

	return principals, nil
}

// SoftDelete marks a live Principal as deleted.
func (p *PostgreSQLPrincipalRepository) SoftDelete(ctx context.Context, principalID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE principals SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, principalID)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete principal")
	}
	return requireAffected(result)
}

// HardDelete removes the Principal row and its role grants.
func (p *PostgreSQLPrincipalRepository) HardDelete(ctx context.Context, principalID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM principal_roles WHERE principal_id = $1`, principalID); err != nil {
		return apperrors.Wrap(err, "failed to delete principal roles")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM principals WHERE id = $1`, principalID)
	if err != nil {
		return apperrors.Wrap(err, "failed to hard delete principal")
	}
	return requireAffected(result)
}

func (p *PostgreSQLPrincipalRepository) scan(row scanner) (*rbacDomain.Principal, error) {
	var principal rbacDomain.Principal
	var deletedAt sql.NullTime

	err := row.Scan(
		&principal.ID,
		&principal.Username,
		&principal.Email,
		&principal.PasswordHash,
		&principal.Enabled,
		&principal.Locked,
		&principal.CreatedAt,
		&principal.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rbacDomain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal")
	}

	if deletedAt.Valid {
		principal.DeletedAt = &deletedAt.Time
	}

	return &principal, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return rbacDomain.ErrPrincipalNotFound
	}
	return nil
}
