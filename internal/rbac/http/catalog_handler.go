package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gatekeeper/internal/httputil"
	"github.com/allisson/gatekeeper/internal/rbac/http/dto"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RoleHandler lists roles.
type RoleHandler struct {
	roleUseCase rbacUseCase.RoleUseCase
	logger      *slog.Logger
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(roleUseCase rbacUseCase.RoleUseCase, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{roleUseCase: roleUseCase, logger: logger}
}

// ListHandler retrieves roles ordered by code.
// GET /v1/roles?offset=0&limit=50 - Requires ROLE_READ permission.
func (h *RoleHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	roles, err := h.roleUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRolesToListResponse(roles))
}

// PermissionHandler lists permissions.
type PermissionHandler struct {
	permissionUseCase rbacUseCase.PermissionUseCase
	logger            *slog.Logger
}

// NewPermissionHandler creates a new permission handler.
func NewPermissionHandler(permissionUseCase rbacUseCase.PermissionUseCase, logger *slog.Logger) *PermissionHandler {
	return &PermissionHandler{permissionUseCase: permissionUseCase, logger: logger}
}

// ListHandler retrieves permissions ordered by code.
// GET /v1/permissions?offset=0&limit=50 - Requires PERMISSION_READ permission.
func (h *PermissionHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permissions, err := h.permissionUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPermissionsToListResponse(permissions))
}
