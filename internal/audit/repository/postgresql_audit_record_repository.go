// Package repository persists audit records in PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

const auditRecordColumns = `id, event_time, actor, principal_id, action, outcome, client_address, path, method,
	message, signature, is_signed, created_at`

// PostgreSQLAuditRecordRepository implements AuditRecord persistence for PostgreSQL.
type PostgreSQLAuditRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditRecordRepository creates a new PostgreSQL AuditRecord repository.
func NewPostgreSQLAuditRecordRepository(db *sql.DB) *PostgreSQLAuditRecordRepository {
	return &PostgreSQLAuditRecordRepository{db: db}
}

// Create inserts a new audit record. A nil principal link is stored as NULL.
func (p *PostgreSQLAuditRecordRepository) Create(ctx context.Context, record *auditDomain.AuditRecord) error {
	querier := database.GetTx(ctx, p.db)

	var principalID any
	if record.PrincipalID != nil {
		principalID = *record.PrincipalID
	}

	query := `INSERT INTO audit_logs (` + auditRecordColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
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
func (p *PostgreSQLAuditRecordRepository) List(
	ctx context.Context,
	offset, limit int,
	from, to *time.Time,
) ([]*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, p.db)

	var conditions []string
	var args []any

	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("event_time >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("event_time <= $%d", len(args)))
	}

	query := `SELECT ` + auditRecordColumns + ` FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY event_time DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

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
		var principalID uuid.NullUUID
		var outcome string

		if err := rows.Scan(
			&record.ID,
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

		record.Outcome = auditDomain.Outcome(outcome)
		if principalID.Valid {
			record.PrincipalID = &principalID.UUID
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit records")
	}

	return records, nil
}

// DeleteOlderThan removes audit records whose event time is before olderThan. With dryRun
// it only counts them.
func (p *PostgreSQLAuditRecordRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM audit_logs WHERE event_time < $1`
		if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit records")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM audit_logs WHERE event_time < $1`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit records")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}
