package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
)

var auditColumnNames = []string{
	"id", "event_time", "actor", "principal_id", "action", "outcome", "client_address", "path", "method",
	"message", "signature", "is_signed", "created_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newRecord(principalID *uuid.UUID) *auditDomain.AuditRecord {
	now := time.Now().UTC()
	return &auditDomain.AuditRecord{
		ID:            uuid.Must(uuid.NewV7()),
		EventTime:     now,
		Actor:         "alice",
		PrincipalID:   principalID,
		Action:        "LOGIN",
		Outcome:       auditDomain.OutcomeFailed,
		ClientAddress: "10.0.0.1",
		Path:          "/v1/auth/login",
		Method:        "POST",
		Message:       "invalid credentials",
		CreatedAt:     now,
	}
}

func TestPostgreSQLAuditRecordRepository_Create(t *testing.T) {
	t.Run("Success_WithPrincipal", func(t *testing.T) {
		db, mock := newMockDB(t)
		principalID := uuid.Must(uuid.NewV7())
		record := newRecord(&principalID)

		mock.ExpectExec("INSERT INTO audit_logs").
			WithArgs(
				record.ID, record.EventTime, "alice", principalID, "LOGIN", "FAILED",
				"10.0.0.1", "/v1/auth/login", "POST", "invalid credentials", []byte(nil), false, record.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := NewPostgreSQLAuditRecordRepository(db).Create(context.Background(), record)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_AnonymousHasNullPrincipal", func(t *testing.T) {
		db, mock := newMockDB(t)
		record := newRecord(nil)
		record.Actor = auditDomain.AnonymousActor

		mock.ExpectExec("INSERT INTO audit_logs").
			WithArgs(
				record.ID, record.EventTime, "anonymousUser", nil, "LOGIN", "FAILED",
				"10.0.0.1", "/v1/auth/login", "POST", "invalid credentials", []byte(nil), false, record.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := NewPostgreSQLAuditRecordRepository(db).Create(context.Background(), record)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errors.New("connection reset"))

		err := NewPostgreSQLAuditRecordRepository(db).Create(context.Background(), newRecord(nil))

		assert.ErrorContains(t, err, "failed to create audit record")
	})
}

func TestPostgreSQLAuditRecordRepository_List(t *testing.T) {
	t.Run("Success_NoFilters", func(t *testing.T) {
		db, mock := newMockDB(t)
		now := time.Now().UTC()
		principalID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("FROM audit_logs ORDER BY event_time DESC, id DESC LIMIT \\$1 OFFSET \\$2").
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(auditColumnNames).
				AddRow(uuid.Must(uuid.NewV7()).String(), now, "alice", principalID.String(), "LOGIN", "SUCCESS",
					"10.0.0.1", "/v1/auth/login", "POST", "", []byte{1, 2}, true, now).
				AddRow(uuid.Must(uuid.NewV7()).String(), now, "anonymousUser", nil, "LOGIN", "FAILED",
					"10.0.0.2", "/v1/auth/login", "POST", "invalid credentials", nil, false, now))

		records, err := NewPostgreSQLAuditRecordRepository(db).List(context.Background(), 0, 10, nil, nil)

		require.NoError(t, err)
		require.Len(t, records, 2)
		require.NotNil(t, records[0].PrincipalID)
		assert.Equal(t, principalID, *records[0].PrincipalID)
		assert.Equal(t, auditDomain.OutcomeSuccess, records[0].Outcome)
		assert.True(t, records[0].IsSigned)
		assert.Nil(t, records[1].PrincipalID)
		assert.Equal(t, "invalid credentials", records[1].Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_TimeWindow", func(t *testing.T) {
		db, mock := newMockDB(t)
		from := time.Now().UTC().Add(-time.Hour)
		to := time.Now().UTC()

		mock.ExpectQuery("WHERE event_time >= \\$1 AND event_time <= \\$2 ORDER BY event_time DESC, id DESC LIMIT \\$3 OFFSET \\$4").
			WithArgs(from, to, 50, 100).
			WillReturnRows(sqlmock.NewRows(auditColumnNames))

		records, err := NewPostgreSQLAuditRecordRepository(db).List(context.Background(), 100, 50, &from, &to)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_OnlyUpperBound", func(t *testing.T) {
		db, mock := newMockDB(t)
		to := time.Now().UTC()

		mock.ExpectQuery("WHERE event_time <= \\$1 ORDER BY").
			WithArgs(to, 10, 0).
			WillReturnRows(sqlmock.NewRows(auditColumnNames))

		_, err := NewPostgreSQLAuditRecordRepository(db).List(context.Background(), 0, 10, nil, &to)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLAuditRecordRepository_DeleteOlderThan(t *testing.T) {
	olderThan := time.Now().UTC().AddDate(0, 0, -30)

	t.Run("Success_DryRunCounts", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM audit_logs WHERE event_time < \\$1").
			WithArgs(olderThan).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := NewPostgreSQLAuditRecordRepository(db).DeleteOlderThan(context.Background(), olderThan, true)

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_Delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM audit_logs WHERE event_time < \\$1").
			WithArgs(olderThan).
			WillReturnResult(sqlmock.NewResult(0, 3))

		count, err := NewPostgreSQLAuditRecordRepository(db).DeleteOlderThan(context.Background(), olderThan, false)

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
