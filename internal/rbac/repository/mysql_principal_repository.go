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

// MySQLPrincipalRepository implements Principal persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLPrincipalRepository struct {
	db *sql.DB
}

// NewMySQLPrincipalRepository creates a new MySQL Principal repository.
func NewMySQLPrincipalRepository(db *sql.DB) *MySQLPrincipalRepository {
	return &MySQLPrincipalRepository{db: db}
}

// Create inserts a new Principal. Returns ErrPrincipalExists when a unique index rejects the row.
func (m *MySQLPrincipalRepository) Create(ctx context.Context, principal *rbacDomain.Principal) error {
	querier := database.GetTx(ctx, m.db)

	id, err := principal.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `INSERT INTO principals (id, username, email, password_hash, enabled, locked, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLPrincipalRepository) GetByID(
	ctx context.Context,
	principalID uuid.UUID,
) (*rbacDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := principalID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `SELECT ` + principalColumns + ` FROM principals WHERE id = ? AND deleted_at IS NULL`

	return m.scan(querier.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a live Principal by username.
func (m *MySQLPrincipalRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*rbacDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE username = ? AND deleted_at IS NULL`

	return m.scan(querier.QueryRowContext(ctx, query, username))
}

// ExistsByUsername reports whether any principal row uses username.
func (m *MySQLPrincipalRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM principals WHERE username = ?)`
	if err := querier.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check principal username")
	}
	return exists, nil
}

// ExistsByEmail reports whether any principal row uses email.
func (m *MySQLPrincipalRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM principals WHERE email = ?)`
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check principal email")
	}
	return exists, nil
}

// List returns live principals ordered by username.
func (m *MySQLPrincipalRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*rbacDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + principalColumns + ` FROM principals
			  WHERE deleted_at IS NULL
			  ORDER BY username ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principals")
	}
	defer func() {
		_ = rows.Close()
	}()

	principals := make([]*rbacDomain.Principal, 0)
	for rows.Next() {
		principal, err := m.scan(rows)
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
func (m *MySQLPrincipalRepository) SoftDelete(ctx context.Context, principalID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := principalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `UPDATE principals SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete principal")
	}
	return requireAffected(result)
}

// HardDelete removes the Principal row and its role grants.
func (m *MySQLPrincipalRepository) HardDelete(ctx context.Context, principalID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := principalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM principal_roles WHERE principal_id = ?`, id); err != nil {
		return apperrors.Wrap(err, "failed to delete principal roles")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM principals WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to hard delete principal")
	}
	return requireAffected(result)
}

func (m *MySQLPrincipalRepository) scan(row scanner) (*rbacDomain.Principal, error) {
	var principal rbacDomain.Principal
	var idBytes []byte
	var deletedAt sql.NullTime

	err := row.Scan(
		&idBytes,
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

	if err := principal.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal principal id")
	}

	if deletedAt.Valid {
		principal.DeletedAt = &deletedAt.Time
	}

	return &principal, nil
}
