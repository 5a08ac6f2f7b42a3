package usecase

import (
	"context"
	"log/slog"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	auditService "github.com/allisson/gatekeeper/internal/audit/service"
	"github.com/allisson/gatekeeper/internal/database"
	"github.com/allisson/gatekeeper/internal/metrics"
)

type recorder struct {
	txManager    database.TxManager
	repo         AuditRecordRepository
	signer       auditService.AuditSigner
	signingKey   []byte
	auditMetrics metrics.AuditMetrics
	logger       *slog.Logger
}

// NewRecorder creates a Recorder. Records are signed only when signingKey is not empty.
func NewRecorder(
	txManager database.TxManager,
	repo AuditRecordRepository,
	signer auditService.AuditSigner,
	signingKey []byte,
	auditMetrics metrics.AuditMetrics,
	logger *slog.Logger,
) Recorder {
	return &recorder{
		txManager:    txManager,
		repo:         repo,
		signer:       signer,
		signingKey:   signingKey,
		auditMetrics: auditMetrics,
		logger:       logger,
	}
}

// Record writes the record in its own transaction. The context is detached from any
// transaction and cancellation of the caller, so a rolled-back or aborted business
// operation still leaves its audit record behind.
func (r *recorder) Record(ctx context.Context, record *auditDomain.AuditRecord) {
	ctx = database.Detach(ctx)
	record.CreatedAt = auditDomain.Now()

	if len(r.signingKey) > 0 {
		signature, err := r.signer.Sign(r.signingKey, record)
		if err != nil {
			r.logger.Error("failed to sign audit record",
				slog.String("action", record.Action),
				slog.Any("error", err),
			)
		} else {
			record.Signature = signature
			record.IsSigned = true
		}
	}

	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, record)
	})
	if err != nil {
		r.auditMetrics.RecordWriteFailure(ctx, record.Action)
		r.logger.Error("failed to persist audit record",
			slog.String("audit_id", record.ID.String()),
			slog.String("action", record.Action),
			slog.String("actor", record.Actor),
			slog.String("outcome", string(record.Outcome)),
			slog.Any("error", err),
		)
		return
	}

	r.auditMetrics.RecordWritten(ctx, record.Action, string(record.Outcome))
}
