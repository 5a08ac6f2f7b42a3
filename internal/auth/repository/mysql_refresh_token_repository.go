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

// MySQLRefreshTokenRepository implements RefreshToken persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

// NewMySQLRefreshTokenRepository creates a new MySQL RefreshToken repository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}

// Create inserts a new ledger entry.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token id")
	}

	principalID, err := token.PrincipalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `INSERT INTO refresh_tokens (id, token_hash, principal_id, expires_at, revoked, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		principalID,
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
func (m *MySQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, principal_id, expires_at, revoked, revoked_at, created_at
			  FROM refresh_tokens WHERE token_hash = ?`

	var token authDomain.RefreshToken
	var id, principalID []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&id,
		&token.TokenHash,
		&principalID,
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

	if err := token.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal refresh token id")
	}
	if err := token.PrincipalID.UnmarshalBinary(principalID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal principal id")
	}

	return &token, nil
}

// Revoke marks the entry as revoked, keeping the first revocation time.
func (m *MySQLRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	// MySQL reports zero affected rows for an unchanged row, so existence is checked first.
	var exists bool
	err := querier.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token_hash = ?)`,
		tokenHash,
	).Scan(&exists)
	if err != nil {
		return apperrors.Wrap(err, "failed to look up refresh token")
	}
	if !exists {
		return authDomain.ErrRefreshTokenNotFound
	}

	query := `UPDATE refresh_tokens
			  SET revoked = TRUE, revoked_at = COALESCE(revoked_at, ?)
			  WHERE token_hash = ?`

	if _, err := querier.ExecContext(ctx, query, revokedAt, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to revoke refresh token")
	}
	return nil
}

// DeleteExpired removes entries that expired before olderThan. With dryRun it only counts them.
func (m *MySQLRefreshTokenRepository) DeleteExpired(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at < ?`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < ?`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}
