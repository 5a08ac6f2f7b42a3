package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// MySQLAuditRecordRepository implements AuditRecord persistence for MySQL. UUIDs are
// stored as BINARY(16).
type MySQLAuditRecordRepository struct {
	db *sql.DB
}

// NewMySQLAuditRecordRepository creates a new MySQL AuditRecord repository.
func NewMySQLAuditRecordRepository(db *sql.DB) *MySQLAuditRecordRepository {
	return &MySQLAuditRecordRepository{db: db}
}

// Create inserts a new audit record.
func (m *MySQLAuditRecordRepository) Create(ctx context.Context, record *auditDomain.AuditRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit record id")
	}

	var principalID []byte
	if record.PrincipalID != nil {
		principalID, err = record.PrincipalID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal principal id")
		}
	}

	query := `INSERT INTO audit_logs (` + auditRecordColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		record.EventTime,
		record.Actor,
		principalID,
		record.Action,
		string(record.Outcome),
		record.ClientAddress,
		record.Path,
		record.Method,
		record.Message,
		record.Signature,
		record.IsSigned,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit record")
	}
	return nil
}

// List retrieves audit records ordered by event time descending, optionally bounded by
// from and to (both inclusive).
func (m *MySQLAuditRecordRepository) List(
	ctx context.Context,
	offset, limit int,
	from, to *time.Time,
) ([]*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, m.db)

	var conditions []string
	var args []any

	if from != nil {
		conditions = append(conditions, "event_time >= ?")
		args = append(args, *from)
	}
	if to != nil {
		conditions = append(conditions, "event_time <= ?")
		args = append(args, *to)
	}

	query := `SELECT ` + auditRecordColumns + ` FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY event_time DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*auditDomain.AuditRecord, 0)
	for rows.Next() {
		var record auditDomain.AuditRecord
		var id, principalID []byte
		var outcome string

		if err := rows.Scan(
			&id,
			&record.EventTime,
			&record.Actor,
			&principalID,
			&record.Action,
			&outcome,
			&record.ClientAddress,
			&record.Path,
			&record.Method,
			&record.Message,
			&record.Signature,
			&record.IsSigned,
			&record.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit record")
		}

		if err := record.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit record id")
		}
		if principalID != nil {
			var pid uuid.UUID
			if err := pid.UnmarshalBinary(principalID); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal principal id")
			}
			record.PrincipalID = &pid
		}
		record.Outcome = auditDomain.Outcome(outcome)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit records")
	}

	return records, nil
}

// DeleteOlderThan removes audit records whose event time is before olderThan. With dryRun
// it only counts them.
func (m *MySQLAuditRecordRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM audit_logs WHERE event_time < ?`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit records")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM audit_logs WHERE event_time < ?`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit records")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}
