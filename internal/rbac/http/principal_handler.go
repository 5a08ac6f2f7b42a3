// Package http exposes principal administration and the role/permission catalog over HTTP.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/httputil"
	"github.com/allisson/gatekeeper/internal/rbac/http/dto"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// PrincipalHandler handles HTTP requests for principal administration.
type PrincipalHandler struct {
	principalUseCase rbacUseCase.PrincipalUseCase
	logger           *slog.Logger
}

// NewPrincipalHandler creates a new principal handler.
func NewPrincipalHandler(principalUseCase rbacUseCase.PrincipalUseCase, logger *slog.Logger) *PrincipalHandler {
	return &PrincipalHandler{
		principalUseCase: principalUseCase,
		logger:           logger,
	}
}

// CreateAdminHandler provisions a new administrator.
// POST /v1/users/admin - Requires USER_CREATE permission.
func (h *PrincipalHandler) CreateAdminHandler(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, err := h.principalUseCase.CreateAdmin(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPrincipalToResponse(principal))
}

// GetHandler retrieves a live principal by ID.
// GET /v1/users/:id - Requires USER_READ permission.
func (h *PrincipalHandler) GetHandler(c *gin.Context) {
	principalID, ok := h.parsePrincipalID(c)
	if !ok {
		return
	}

	principal, err := h.principalUseCase.Get(c.Request.Context(), principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToResponse(principal))
}

// ListHandler retrieves live principals ordered by username.
// GET /v1/users?offset=0&limit=50 - Requires USER_READ permission.
func (h *PrincipalHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	principals, err := h.principalUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalsToListResponse(principals))
}

// DeleteHandler soft-deletes a principal.
// DELETE /v1/users/:id - Requires USER_DELETE permission.
func (h *PrincipalHandler) DeleteHandler(c *gin.Context) {
	principalID, ok := h.parsePrincipalID(c)
	if !ok {
		return
	}

	if err := h.principalUseCase.Delete(c.Request.Context(), principalID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// PurgeHandler irreversibly removes a principal.
// DELETE /v1/users/:id/hard - Requires USER_HARD_DELETE permission.
func (h *PrincipalHandler) PurgeHandler(c *gin.Context) {
	principalID, ok := h.parsePrincipalID(c)
	if !ok {
		return
	}

	if err := h.principalUseCase.Purge(c.Request.Context(), principalID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *PrincipalHandler) parsePrincipalID(c *gin.Context) (uuid.UUID, bool) {
	principalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, errors.New("invalid user ID format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return principalID, true
}
