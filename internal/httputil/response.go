// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping binds a sentinel from internal/errors to its HTTP rendering.
// exposeMessage copies err.Error() into the response instead of the fixed message.
type errorMapping struct {
	sentinel      error
	status        int
	code          string
	message       string
	exposeMessage bool
}

// Order matters: the first sentinel matched by errors.Is wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found", false},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data", false},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", "", true},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required", false},
	{apperrors.ErrLocked, http.StatusLocked, "account_locked", "The account is locked", false},
	{
		apperrors.ErrForbidden,
		http.StatusForbidden,
		"forbidden",
		"You don't have permission to access this resource",
		false,
	},
}

var internalErrorMapping = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

func mappingFor(err error) errorMapping {
	for _, m := range errorMappings {
		if apperrors.Is(err, m.sentinel) {
			return m
		}
	}
	return internalErrorMapping
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON error body.
// Unknown errors become 500 without leaking details; 401 responses carry a Bearer challenge.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	m := mappingFor(err)
	response := ErrorResponse{Error: m.code, Message: m.message}
	if m.exposeMessage {
		response.Message = err.Error()
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", m.status),
			slog.String("error_code", m.code),
			slog.Any("error", err),
		)
	}

	if m.status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", `Bearer realm="gatekeeper"`)
	}
	c.JSON(m.status, response)
}

// HandleBadRequestGin writes a 400 for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 for request validation failures.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
