package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	auditUseCase "github.com/allisson/gatekeeper/internal/audit/usecase"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
)

// purgeFunc removes rows older than days, or only counts them when dryRun is set.
type purgeFunc func(ctx context.Context, days int, dryRun bool) (int64, error)

type retentionResult struct {
	Target string `json:"target"`
	Count  int64  `json:"count"`
	Days   int    `json:"days"`
	DryRun bool   `json:"dry_run"`
}

func (r retentionResult) text() string {
	if r.DryRun {
		return fmt.Sprintf("Dry-run mode: Would delete %d %s(s) older than %d day(s)", r.Count, r.Target, r.Days)
	}
	return fmt.Sprintf("Successfully deleted %d %s(s) older than %d day(s)", r.Count, r.Target, r.Days)
}

func runRetention(
	ctx context.Context,
	target string,
	purge purgeFunc,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	log := logger.With(slog.String("target", target), slog.Int("days", days), slog.Bool("dry_run", dryRun))
	log.Info("retention cleanup started")

	count, err := purge(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean %ss: %w", target, err)
	}

	result := retentionResult{Target: target, Count: count, Days: days, DryRun: dryRun}
	if format == "json" {
		if err := writeJSON(writer, result); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, result.text())
	}

	log.Info("retention cleanup completed", slog.Int64("count", count))
	return nil
}

// RunCleanAuditLogs deletes audit records older than days.
func RunCleanAuditLogs(
	ctx context.Context,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	return runRetention(ctx, "audit log", auditLogUseCase.DeleteOlderThan, logger, writer, days, dryRun, format)
}

// RunCleanExpiredTokens deletes refresh tokens that expired more than days ago.
// Revoked tokens that have not expired yet are kept.
func RunCleanExpiredTokens(
	ctx context.Context,
	refreshTokenUseCase authUseCase.RefreshTokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	return runRetention(
		ctx,
		"expired refresh token",
		refreshTokenUseCase.CleanExpired,
		logger,
		writer,
		days,
		dryRun,
		format,
	)
}
