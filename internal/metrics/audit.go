package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuditMetrics records the outcome of audit record persistence.
type AuditMetrics interface {
	// RecordWritten counts an audit record persisted for action with outcome SUCCESS or FAILED.
	RecordWritten(ctx context.Context, action, outcome string)

	// RecordWriteFailure counts an audit record that could not be persisted.
	RecordWriteFailure(ctx context.Context, action string)
}

type auditMetrics struct {
	writtenCounter metric.Int64Counter
	failureCounter metric.Int64Counter
}

// NewAuditMetrics creates an AuditMetrics implementation backed by the given meter provider.
func NewAuditMetrics(meterProvider metric.MeterProvider, namespace string) (AuditMetrics, error) {
	meter := meterProvider.Meter(namespace)

	writtenCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_audit_records_total", namespace),
		metric.WithDescription("Total number of audit records persisted"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit records counter: %w", err)
	}

	failureCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_audit_write_failures_total", namespace),
		metric.WithDescription("Total number of audit records that could not be persisted"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit write failures counter: %w", err)
	}

	return &auditMetrics{
		writtenCounter: writtenCounter,
		failureCounter: failureCounter,
	}, nil
}

func (a *auditMetrics) RecordWritten(ctx context.Context, action, outcome string) {
	a.writtenCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("action", action),
			attribute.String("outcome", outcome),
		),
	)
}

func (a *auditMetrics) RecordWriteFailure(ctx context.Context, action string) {
	a.failureCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

// NoOpAuditMetrics is a no-op implementation of AuditMetrics for when metrics are disabled.
type NoOpAuditMetrics struct{}

// NewNoOpAuditMetrics creates a no-op AuditMetrics implementation.
func NewNoOpAuditMetrics() AuditMetrics {
	return &NoOpAuditMetrics{}
}

// RecordWritten does nothing when metrics are disabled.
func (n *NoOpAuditMetrics) RecordWritten(ctx context.Context, action, outcome string) {}

// RecordWriteFailure does nothing when metrics are disabled.
func (n *NoOpAuditMetrics) RecordWriteFailure(ctx context.Context, action string) {}
