package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

func TestMySQLRefreshTokenRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	token := newRefreshToken()
	id, err := token.ID.MarshalBinary()
	require.NoError(t, err)
	principalID, err := token.PrincipalID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(id, token.TokenHash, principalID, token.ExpiresAt, false, nil, token.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewMySQLRefreshTokenRepository(db).Create(context.Background(), token)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRefreshTokenRepository_GetByTokenHash(t *testing.T) {
	db, mock := newMockDB(t)
	token := newRefreshToken()
	revokedAt := time.Now().UTC()
	id, err := token.ID.MarshalBinary()
	require.NoError(t, err)
	principalID, err := token.PrincipalID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectQuery("FROM refresh_tokens WHERE token_hash = \\?").
		WithArgs(token.TokenHash).
		WillReturnRows(sqlmock.NewRows(refreshTokenColumnNames).AddRow(
			id, token.TokenHash, principalID, token.ExpiresAt, true, revokedAt, token.CreatedAt,
		))

	got, err := NewMySQLRefreshTokenRepository(db).GetByTokenHash(context.Background(), token.TokenHash)

	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)
	assert.Equal(t, token.PrincipalID, got.PrincipalID)
	assert.True(t, got.Revoked)
	require.NotNil(t, got.RevokedAt)
	assert.Equal(t, revokedAt, *got.RevokedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRefreshTokenRepository_Revoke(t *testing.T) {
	revokedAt := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("hash").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec("UPDATE refresh_tokens").
			WithArgs(revokedAt, "hash").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewMySQLRefreshTokenRepository(db).Revoke(context.Background(), "hash", revokedAt)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("hash").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := NewMySQLRefreshTokenRepository(db).Revoke(context.Background(), "hash", revokedAt)

		assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQLRefreshTokenRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	cutoff := time.Now().UTC()
	mock.ExpectExec("DELETE FROM refresh_tokens WHERE expires_at < \\?").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := NewMySQLRefreshTokenRepository(db).DeleteExpired(context.Background(), cutoff, false)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
