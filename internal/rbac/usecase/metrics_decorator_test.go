package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/gatekeeper/internal/metrics"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	"github.com/allisson/gatekeeper/internal/rbac/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestPrincipalUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	principalID := uuid.Must(uuid.NewV7())

	t.Run("Purge_Success", func(t *testing.T) {
		next := &mocks.MockPrincipalUseCase{}
		m := &mockBusinessMetrics{}

		next.On("Purge", ctx, principalID).Return(nil).Once()
		m.On("RecordOperation", ctx, "rbac", "principal_purge", "success").Return().Once()
		m.On("RecordDuration", ctx, "rbac", "principal_purge", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := NewPrincipalUseCaseWithMetrics(next, m).Purge(ctx, principalID)

		assert.NoError(t, err)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("CreateAdmin_Error", func(t *testing.T) {
		next := &mocks.MockPrincipalUseCase{}
		m := &mockBusinessMetrics{}
		input := rbacDomain.CreatePrincipalInput{Username: "ops"}

		next.On("CreateAdmin", ctx, input).Return(nil, rbacDomain.ErrUsernameTaken).Once()
		m.On("RecordOperation", ctx, "rbac", "create_admin", "rejected").Return().Once()
		m.On("RecordDuration", ctx, "rbac", "create_admin", mock.AnythingOfType("time.Duration"), "rejected").
			Return().
			Once()

		principal, err := NewPrincipalUseCaseWithMetrics(next, m).CreateAdmin(ctx, input)

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, rbacDomain.ErrUsernameTaken)
		m.AssertExpectations(t)
	})
}

func TestPermissionResolverWithMetrics_Resolve(t *testing.T) {
	ctx := context.Background()
	principalID := uuid.Must(uuid.NewV7())
	next := &mocks.MockPermissionResolver{}
	m := &mockBusinessMetrics{}
	authorities := rbacDomain.NewAuthorities([]rbacDomain.Role{{Code: "USER"}}, []rbacDomain.Permission{{Code: "USER_READ"}})

	next.On("Resolve", ctx, principalID).Return(authorities, nil).Once()
	m.On("RecordOperation", ctx, "rbac", "resolve_authorities", "success").Return().Once()
	m.On("RecordDuration", ctx, "rbac", "resolve_authorities", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()

	got, err := NewPermissionResolverWithMetrics(next, m).Resolve(ctx, principalID)

	assert.NoError(t, err)
	assert.Equal(t, authorities, got)
	m.AssertExpectations(t)
}
