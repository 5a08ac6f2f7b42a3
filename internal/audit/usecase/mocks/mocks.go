// Package mocks provides mock implementations of the audit use cases and their
// collaborators for testing.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	auditUseCase "github.com/allisson/gatekeeper/internal/audit/usecase"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase.
type MockAuditLogUseCase struct {
	mock.Mock
}

// List mocks the List method of AuditLogUseCase.
func (m *MockAuditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	from, to *time.Time,
) ([]*auditDomain.AuditRecord, error) {
	args := m.Called(ctx, offset, limit, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditRecord), args.Error(1)
}

// DeleteOlderThan mocks the DeleteOlderThan method of AuditLogUseCase.
func (m *MockAuditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// VerifyBatch mocks the VerifyBatch method of AuditLogUseCase.
func (m *MockAuditLogUseCase) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*auditUseCase.VerificationReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditUseCase.VerificationReport), args.Error(1)
}

// MockInterceptor runs the wrapped operation and records the call.
type MockInterceptor struct {
	mock.Mock
}

// Intercept records the call and then runs op, returning op's error.
func (m *MockInterceptor) Intercept(
	ctx context.Context,
	action string,
	args []any,
	op func(ctx context.Context) error,
) error {
	m.Called(ctx, action, args)
	return op(ctx)
}

// MockAuditRecordRepository is a mock implementation of AuditRecordRepository.
type MockAuditRecordRepository struct {
	mock.Mock
}

// Create mocks the Create method of AuditRecordRepository.
func (m *MockAuditRecordRepository) Create(ctx context.Context, record *auditDomain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// List mocks the List method of AuditRecordRepository.
func (m *MockAuditRecordRepository) List(
	ctx context.Context,
	offset, limit int,
	from, to *time.Time,
) ([]*auditDomain.AuditRecord, error) {
	args := m.Called(ctx, offset, limit, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditRecord), args.Error(1)
}

// DeleteOlderThan mocks the DeleteOlderThan method of AuditRecordRepository.
func (m *MockAuditRecordRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockPrincipalFinder is a mock implementation of PrincipalFinder.
type MockPrincipalFinder struct {
	mock.Mock
}

// GetByUsername mocks the GetByUsername method of PrincipalFinder.
func (m *MockPrincipalFinder) GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

// MockAuditMetrics is a mock implementation of metrics.AuditMetrics.
type MockAuditMetrics struct {
	mock.Mock
}

// RecordWritten mocks the RecordWritten method of AuditMetrics.
func (m *MockAuditMetrics) RecordWritten(ctx context.Context, action, outcome string) {
	m.Called(ctx, action, outcome)
}

// RecordWriteFailure mocks the RecordWriteFailure method of AuditMetrics.
func (m *MockAuditMetrics) RecordWriteFailure(ctx context.Context, action string) {
	m.Called(ctx, action)
}

// CaptureRecorder is a Recorder that keeps every record handed to it.
type CaptureRecorder struct {
	mu      sync.Mutex
	records []*auditDomain.AuditRecord
}

// Record appends record.
func (c *CaptureRecorder) Record(_ context.Context, record *auditDomain.AuditRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record)
}

// Records returns a copy of what has been recorded so far.
func (c *CaptureRecorder) Records() []*auditDomain.AuditRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*auditDomain.AuditRecord(nil), c.records...)
}

// Only returns the single captured record, or nil when there is not exactly one.
func (c *CaptureRecorder) Only() *auditDomain.AuditRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.records) != 1 {
		return nil
	}
	return c.records[0]
}
