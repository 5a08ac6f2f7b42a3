package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	"github.com/allisson/gatekeeper/internal/rbac/http/dto"
	"github.com/allisson/gatekeeper/internal/rbac/usecase/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestPrincipalHandler(t *testing.T) (*PrincipalHandler, *mocks.MockPrincipalUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockPrincipalUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })

	return NewPrincipalHandler(mockUseCase, testLogger()), mockUseCase
}

func createTestContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		payload, _ := json.Marshal(v)
		reader = bytes.NewBuffer(payload)
	}

	c.Request = httptest.NewRequest(method, target, reader)
	if reader != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func newPrincipal(username string) *rbacDomain.Principal {
	now := time.Now().UTC()
	return &rbacDomain.Principal{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$secret",
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPrincipalHandler_CreateAdminHandler(t *testing.T) {
	t.Run("Success_Created", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		principal := newPrincipal("ops")
		input := rbacDomain.CreatePrincipalInput{Username: "ops", Email: "ops@example.com", Password: "changeme42"}
		mockUseCase.On("CreateAdmin", mock.Anything, input).Return(principal, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/admin", dto.CreateAdminRequest{
			Username: "ops",
			Email:    "ops@example.com",
			Password: "changeme42",
		})
		handler.CreateAdminHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.PrincipalResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, principal.ID.String(), response.ID)
		assert.Equal(t, "ops", response.Username)
		assert.NotContains(t, w.Body.String(), "argon2id")
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupTestPrincipalHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/users/admin", "{")
		handler.CreateAdminHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_ValidationFailed", func(t *testing.T) {
		handler, _ := setupTestPrincipalHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/users/admin", dto.CreateAdminRequest{
			Username: "ops",
			Email:    "bad",
			Password: "changeme42",
		})
		handler.CreateAdminHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UsernameTaken", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		mockUseCase.On("CreateAdmin", mock.Anything, mock.Anything).
			Return(nil, rbacDomain.ErrUsernameTaken).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/admin", dto.CreateAdminRequest{
			Username: "ops",
			Email:    "ops@example.com",
			Password: "changeme42",
		})
		handler.CreateAdminHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPrincipalHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		principal := newPrincipal("alice")
		mockUseCase.On("Get", mock.Anything, principal.ID).Return(principal, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/users/"+principal.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: principal.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("Get", mock.Anything, id).Return(nil, rbacDomain.ErrPrincipalNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/users/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPrincipalHandler_ListHandler(t *testing.T) {
	t.Run("Success_CustomPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		mockUseCase.On("List", mock.Anything, 10, 5).
			Return([]*rbacDomain.Principal{newPrincipal("alice"), newPrincipal("bob")}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/users?offset=10&limit=5", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ListPrincipalsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, "bob", response.Data[1].Username)
	})

	t.Run("Success_EmptyListIsArray", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		mockUseCase.On("List", mock.Anything, 0, 50).Return([]*rbacDomain.Principal{}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/users", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupTestPrincipalHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/users?limit=abc", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestPrincipalHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_NoContent", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("Delete", mock.Anything, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/users/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_InvalidUUID", func(t *testing.T) {
		handler, _ := setupTestPrincipalHandler(t)

		c, w := createTestContext(http.MethodDelete, "/v1/users/not-a-uuid", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must be a valid UUID")
	})
}

func TestPrincipalHandler_PurgeHandler(t *testing.T) {
	t.Run("Success_NoContent", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("Purge", mock.Anything, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/users/"+id.String()+"/hard", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.PurgeHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_Internal", func(t *testing.T) {
		handler, mockUseCase := setupTestPrincipalHandler(t)
		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("Purge", mock.Anything, id).Return(apperrors.New("connection reset")).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/users/"+id.String()+"/hard", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.PurgeHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRoleHandler_ListHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := &mocks.MockRoleUseCase{}
	defer mockUseCase.AssertExpectations(t)

	mockUseCase.On("List", mock.Anything, 0, 50).Return([]*rbacDomain.Role{
		{ID: uuid.Must(uuid.NewV7()), Code: "ADMIN", Name: "Administrator"},
		{ID: uuid.Must(uuid.NewV7()), Code: "USER", Name: "Standard User"},
	}, nil).Once()

	c, w := createTestContext(http.MethodGet, "/v1/roles", nil)
	NewRoleHandler(mockUseCase, testLogger()).ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.ListRolesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)
	assert.Equal(t, "ADMIN", response.Data[0].Code)
}

func TestPermissionHandler_ListHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := &mocks.MockPermissionUseCase{}
	defer mockUseCase.AssertExpectations(t)

	mockUseCase.On("List", mock.Anything, 0, 2).Return([]*rbacDomain.Permission{
		{ID: uuid.Must(uuid.NewV7()), Code: "AUDIT_LOG_READ"},
		{ID: uuid.Must(uuid.NewV7()), Code: "USER_READ"},
	}, nil).Once()

	c, w := createTestContext(http.MethodGet, "/v1/permissions?limit=2", nil)
	NewPermissionHandler(mockUseCase, testLogger()).ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.ListPermissionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)
	assert.Equal(t, "USER_READ", response.Data[1].Code)
}
