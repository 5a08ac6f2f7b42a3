// Package usecase implements the audit trail: the interceptor that wraps auditable
// operations, the recorder that persists their outcome, and read access to the log.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// AuditRecordRepository defines persistence operations for audit records.
type AuditRecordRepository interface {
	// Create inserts a record. Records are never updated afterwards.
	Create(ctx context.Context, record *auditDomain.AuditRecord) error

	// List returns records ordered by event time descending. from and to are optional
	// inclusive bounds on the event time.
	List(ctx context.Context, offset, limit int, from, to *time.Time) ([]*auditDomain.AuditRecord, error)

	// DeleteOlderThan removes records whose event time is before olderThan, or only counts
	// them when dryRun is true.
	DeleteOlderThan(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// PrincipalFinder looks up live principals by username to link audit records to them.
type PrincipalFinder interface {
	GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error)
}

// IdentityResolver returns the authenticated principal name carried by ctx, if any.
type IdentityResolver func(ctx context.Context) (string, bool)

// Recorder persists audit records in a unit of work independent from the caller's.
// Persistence failures are logged and counted, never returned.
type Recorder interface {
	Record(ctx context.Context, record *auditDomain.AuditRecord)
}

// Interceptor wraps an operation with actor resolution and outcome recording.
type Interceptor interface {
	// Intercept runs op and records exactly one audit record for action, whatever op does.
	// The error returned is the one op returned, unchanged. A panic in op is recorded as
	// FAILED and then re-raised. An op that leaves through runtime.Goexit is recorded as
	// FAILED with the message "aborted".
	Intercept(ctx context.Context, action string, args []any, op func(ctx context.Context) error) error
}

// AuditLogUseCase exposes the persisted audit trail.
type AuditLogUseCase interface {
	// List returns records newest first within the optional [from, to] window.
	List(ctx context.Context, offset, limit int, from, to *time.Time) ([]*auditDomain.AuditRecord, error)

	// DeleteOlderThan removes records older than the given number of days.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)

	// VerifyBatch checks the signature of every record whose event time falls in [start, end].
	VerifyBatch(ctx context.Context, start, end time.Time) (*VerificationReport, error)
}

// VerificationReport summarizes a signature verification run.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidLogs   []uuid.UUID
}
