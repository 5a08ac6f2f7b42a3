// Package repository persists the refresh token ledger in PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// PostgreSQLRefreshTokenRepository implements RefreshToken persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQL RefreshToken repository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}

// Create inserts a new ledger entry.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, token_hash, principal_id, expires_at, revoked, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.PrincipalID,
		token.ExpiresAt,
		token.Revoked,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByTokenHash retrieves a ledger entry by the hash of its token. Returns
// ErrRefreshTokenNotFound if no row matches.
func (p *PostgreSQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, principal_id, expires_at, revoked, revoked_at, created_at
			  FROM refresh_tokens WHERE token_hash = $1`

	var token authDomain.RefreshToken
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.PrincipalID,
		&token.ExpiresAt,
		&token.Revoked,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token")
	}

	return &token, nil
}

// Revoke marks the entry as revoked. Revoking an already revoked token keeps the
// original revocation time.
func (p *PostgreSQLRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens
			  SET revoked = TRUE, revoked_at = COALESCE(revoked_at, $1)
			  WHERE token_hash = $2`

	result, err := querier.ExecContext(ctx, query, revokedAt, tokenHash)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke refresh token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return authDomain.ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteExpired removes entries that expired before olderThan. With dryRun it only counts them.
func (p *PostgreSQLRefreshTokenRepository) DeleteExpired(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at < $1`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}
