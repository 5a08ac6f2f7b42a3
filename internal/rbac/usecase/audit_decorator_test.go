package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditMocks "github.com/allisson/gatekeeper/internal/audit/usecase/mocks"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	"github.com/allisson/gatekeeper/internal/rbac/usecase/mocks"
)

func TestPrincipalUseCaseWithAudit(t *testing.T) {
	ctx := context.Background()
	principalID := uuid.Must(uuid.NewV7())

	t.Run("CreateAdmin_AuditedWithInputAsCarrier", func(t *testing.T) {
		next := &mocks.MockPrincipalUseCase{}
		interceptor := &auditMocks.MockInterceptor{}
		input := rbacDomain.CreatePrincipalInput{Username: "root"}
		created := &rbacDomain.Principal{ID: principalID, Username: "root"}

		interceptor.On("Intercept", ctx, ActionCreateAdmin, []any{input}).Once()
		next.On("CreateAdmin", ctx, input).Return(created, nil).Once()

		principal, err := NewPrincipalUseCaseWithAudit(next, interceptor).CreateAdmin(ctx, input)

		require.NoError(t, err)
		assert.Same(t, created, principal)
		interceptor.AssertExpectations(t)
	})

	t.Run("Delete_Audited", func(t *testing.T) {
		next := &mocks.MockPrincipalUseCase{}
		interceptor := &auditMocks.MockInterceptor{}

		interceptor.On("Intercept", ctx, ActionDelete, []any{principalID}).Once()
		next.On("Delete", ctx, principalID).Return(rbacDomain.ErrPrincipalNotFound).Once()

		err := NewPrincipalUseCaseWithAudit(next, interceptor).Delete(ctx, principalID)

		assert.ErrorIs(t, err, rbacDomain.ErrPrincipalNotFound)
		interceptor.AssertExpectations(t)
	})

	t.Run("Purge_Audited", func(t *testing.T) {
		next := &mocks.MockPrincipalUseCase{}
		interceptor := &auditMocks.MockInterceptor{}

		interceptor.On("Intercept", ctx, ActionHardDelete, []any{principalID}).Once()
		next.On("Purge", ctx, principalID).Return(nil).Once()

		require.NoError(t, NewPrincipalUseCaseWithAudit(next, interceptor).Purge(ctx, principalID))
		interceptor.AssertExpectations(t)
	})

	t.Run("List_NotAudited", func(t *testing.T) {
		next := &mocks.MockPrincipalUseCase{}
		interceptor := &auditMocks.MockInterceptor{}

		next.On("List", ctx, 0, 10).Return([]*rbacDomain.Principal{}, nil).Once()

		_, err := NewPrincipalUseCaseWithAudit(next, interceptor).List(ctx, 0, 10)

		require.NoError(t, err)
		interceptor.AssertNotCalled(t, "Intercept", mock.Anything, mock.Anything, mock.Anything)
	})
}
