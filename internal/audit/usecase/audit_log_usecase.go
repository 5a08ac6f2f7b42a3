package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	auditService "github.com/allisson/gatekeeper/internal/audit/service"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

const verifyBatchSize = 500

type auditLogUseCase struct {
	repo       AuditRecordRepository
	signer     auditService.AuditSigner
	signingKey []byte
}

// NewAuditLogUseCase creates a new AuditLogUseCase.
func NewAuditLogUseCase(
	repo AuditRecordRepository,
	signer auditService.AuditSigner,
	signingKey []byte,
) AuditLogUseCase {
	return &auditLogUseCase{
		repo:       repo,
		signer:     signer,
		signingKey: signingKey,
	}
}

// List retrieves audit records newest first. Both bounds are inclusive and optional.
func (a *auditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	from, to *time.Time,
) ([]*auditDomain.AuditRecord, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, auditDomain.ErrInvalidTimeRange
	}

	records, err := a.repo.List(ctx, offset, limit, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit records")
	}
	return records, nil
}

// DeleteOlderThan removes audit records older than days. With dryRun it only counts them.
func (a *auditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be zero or positive")
	}

	olderThan := time.Now().UTC().AddDate(0, 0, -days)

	count, err := a.repo.DeleteOlderThan(ctx, olderThan, dryRun)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit records")
	}
	return count, nil
}

// VerifyBatch walks the window in pages and checks every signed record. Unsigned records
// are counted but not treated as invalid.
func (a *auditLogUseCase) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*VerificationReport, error) {
	if start.After(end) {
		return nil, auditDomain.ErrInvalidTimeRange
	}
	if len(a.signingKey) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "audit signing key is not configured")
	}

	report := &VerificationReport{InvalidLogs: make([]uuid.UUID, 0)}

	for offset := 0; ; offset += verifyBatchSize {
		records, err := a.repo.List(ctx, offset, verifyBatchSize, &start, &end)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit records")
		}

		for _, record := range records {
			report.TotalChecked++
			if !record.IsSigned {
				report.UnsignedCount++
				continue
			}

			report.SignedCount++
			if err := a.signer.Verify(a.signingKey, record); err != nil {
				report.InvalidCount++
				report.InvalidLogs = append(report.InvalidLogs, record.ID)
				continue
			}
			report.ValidCount++
		}

		if len(records) < verifyBatchSize {
			break
		}
	}

	return report, nil
}
