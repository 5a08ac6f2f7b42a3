package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

var principalColumnNames = []string{
	"id", "username", "email", "password_hash", "enabled", "locked", "created_at", "updated_at", "deleted_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgreSQLPrincipalRepository_Create(t *testing.T) {
	principal := &rbacDomain.Principal{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Enabled:      true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	t.Run("Success_Insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO principals").
			WithArgs(principal.ID, "alice", "alice@example.com", "hash", true, false, principal.CreatedAt, principal.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := NewPostgreSQLPrincipalRepository(db).Create(context.Background(), principal)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_UniqueViolation", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO principals").WillReturnError(&pq.Error{Code: "23505"})

		err := NewPostgreSQLPrincipalRepository(db).Create(context.Background(), principal)

		assert.ErrorIs(t, err, rbacDomain.ErrPrincipalExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLPrincipalRepository_GetByUsername(t *testing.T) {
	t.Run("Success_LivePrincipal", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()
		mock.ExpectQuery("FROM principals WHERE username = \\$1 AND deleted_at IS NULL").
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(principalColumnNames).
				AddRow(id.String(), "alice", "alice@example.com", "hash", true, false, now, now, nil))

		principal, err := NewPostgreSQLPrincipalRepository(db).GetByUsername(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, id, principal.ID)
		assert.Equal(t, "alice", principal.Username)
		assert.True(t, principal.Enabled)
		assert.Nil(t, principal.DeletedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM principals WHERE username").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		principal, err := NewPostgreSQLPrincipalRepository(db).GetByUsername(context.Background(), "ghost")

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, rbacDomain.ErrPrincipalNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLPrincipalRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT EXISTS \\(SELECT 1 FROM principals WHERE username = \\$1\\)").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS \\(SELECT 1 FROM principals WHERE email = \\$1\\)").
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewPostgreSQLPrincipalRepository(db)

	byUsername, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, byUsername)

	byEmail, err := repo.ExistsByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.False(t, byEmail)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLPrincipalRepository_SoftDelete(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	t.Run("Success_MarksDeleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE principals SET deleted_at = NOW\\(\\)").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewPostgreSQLPrincipalRepository(db).SoftDelete(context.Background(), id)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_AlreadyDeleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE principals SET deleted_at").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLPrincipalRepository(db).SoftDelete(context.Background(), id)

		assert.ErrorIs(t, err, rbacDomain.ErrPrincipalNotFound)
	})
}

func TestPostgreSQLPrincipalRepository_HardDelete(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	t.Run("Success_RemovesGrantsAndRow", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM principal_roles WHERE principal_id = \\$1").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM principals WHERE id = \\$1").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewPostgreSQLPrincipalRepository(db).HardDelete(context.Background(), id)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_Missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM principal_roles").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM principals").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLPrincipalRepository(db).HardDelete(context.Background(), id)

		assert.ErrorIs(t, err, rbacDomain.ErrPrincipalNotFound)
	})
}

func TestPostgreSQLPrincipalRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM principals\\s+WHERE deleted_at IS NULL\\s+ORDER BY username ASC").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(principalColumnNames).
			AddRow(uuid.Must(uuid.NewV7()).String(), "alice", "a@example.com", "h", true, false, now, now, nil).
			AddRow(uuid.Must(uuid.NewV7()).String(), "bob", "b@example.com", "h", true, true, now, now, nil))

	principals, err := NewPostgreSQLPrincipalRepository(db).List(context.Background(), 0, 10)

	require.NoError(t, err)
	require.Len(t, principals, 2)
	assert.Equal(t, "alice", principals[0].Username)
	assert.True(t, principals[1].Locked)
}
