package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditUseCase "github.com/allisson/gatekeeper/internal/audit/usecase"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// verifyResult is the JSON shape of a verification run.
type verifyResult struct {
	Start         time.Time   `json:"start"`
	End           time.Time   `json:"end"`
	TotalChecked  int64       `json:"total_checked"`
	SignedCount   int64       `json:"signed_count"`
	UnsignedCount int64       `json:"unsigned_count"`
	ValidCount    int64       `json:"valid_count"`
	InvalidCount  int64       `json:"invalid_count"`
	InvalidLogs   []uuid.UUID `json:"invalid_logs"`
	Passed        bool        `json:"passed"`
}

// RunVerifyAuditLogs recomputes the signature of every signed audit record whose event
// time falls in the window and fails when any of them does not match. Dates are UTC; a
// date-only end bound covers that whole day. Unsigned records are reported but pass.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	startDate, endDate string,
	format string,
) error {
	start, _, err := parseDate(startDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	end, dateOnly, err := parseDate(endDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if dateOnly {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	if !end.After(start) {
		return fmt.Errorf("end date must be after start date")
	}

	logger.Info("verifying audit logs", slog.Time("start_date", start), slog.Time("end_date", end))

	report, err := auditLogUseCase.VerifyBatch(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, newVerifyResult(report, start, end)); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputVerifyText(writer, report, start, end)
	}

	logger.Info("verification completed",
		slog.Int64("total_checked", report.TotalChecked),
		slog.Int64("valid", report.ValidCount),
		slog.Int64("invalid", report.InvalidCount),
		slog.Int64("unsigned", report.UnsignedCount),
	)

	if report.InvalidCount > 0 {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", report.InvalidCount)
	}
	return nil
}

// parseDate accepts "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" in UTC and reports which one matched.
func parseDate(dateStr string) (t time.Time, dateOnly bool, err error) {
	if t, err := time.ParseInLocation(dateTimeLayout, dateStr, time.UTC); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation(dateLayout, dateStr, time.UTC); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf(
		"invalid date format (expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS): %s",
		dateStr,
	)
}

func newVerifyResult(report *auditUseCase.VerificationReport, start, end time.Time) verifyResult {
	invalid := report.InvalidLogs
	if invalid == nil {
		invalid = []uuid.UUID{}
	}
	return verifyResult{
		Start:         start,
		End:           end,
		TotalChecked:  report.TotalChecked,
		SignedCount:   report.SignedCount,
		UnsignedCount: report.UnsignedCount,
		ValidCount:    report.ValidCount,
		InvalidCount:  report.InvalidCount,
		InvalidLogs:   invalid,
		Passed:        report.InvalidCount == 0,
	}
}

func outputVerifyText(writer io.Writer, report *auditUseCase.VerificationReport, start, end time.Time) {
	_, _ = fmt.Fprintf(writer, "Audit Log Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "=================================\n\n")
	_, _ = fmt.Fprintf(writer, "Time Range: %s to %s (UTC)\n\n", start.Format(dateTimeLayout), end.Format(dateTimeLayout))

	rows := []struct {
		label string
		value int64
	}{
		{"Total Checked", report.TotalChecked},
		{"Signed", report.SignedCount},
		{"Unsigned", report.UnsignedCount},
		{"Valid", report.ValidCount},
		{"Invalid", report.InvalidCount},
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(writer, "%-15s %d\n", row.label+":", row.value)
	}
	_, _ = fmt.Fprintln(writer)

	switch {
	case report.InvalidCount > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d log(s) failed integrity check!\n\n", report.InvalidCount)
		_, _ = fmt.Fprintf(writer, "Invalid Log IDs:\n")
		for _, id := range report.InvalidLogs {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case report.TotalChecked == 0:
		_, _ = fmt.Fprintf(writer, "Status: No logs found in specified time range\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}
