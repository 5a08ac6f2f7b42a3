package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
)

// AuthenticationMiddleware authenticates requests carrying a Bearer access token.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive scheme)
// 2. Resolves the token subject into a principal and its authorities via SessionUseCase.Identify
// 3. Stores the identity in the request context for GetIdentity and the audit interceptor
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid, expired or orphaned token → 401 Unauthorized
//   - Disabled principal → 403 Forbidden
//   - Locked principal → 423 Locked
//   - Other errors → 500 Internal Server Error
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(sessionUseCase, logger))
//	router.GET("/protected", func(c *gin.Context) {
//	    identity, _ := GetIdentity(c.Request.Context())
//	    // identity.Authorities drives authorization decisions
//	})
func AuthenticationMiddleware(
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := authDomain.ParseBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		identity, err := sessionUseCase.Identify(c.Request.Context(), accessToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("principal_id", identity.Principal.ID.String()),
			slog.String("username", identity.Principal.Username))

		c.Next()
	}
}

// AuthorizationMiddleware requires the authenticated principal to hold the given authority,
// either a permission code such as USER_READ or a role authority such as ROLE_ADMIN.
//
// This middleware MUST be used after AuthenticationMiddleware.
//
// Error handling:
//   - No identity in context → 401 Unauthorized (AuthenticationMiddleware not run)
//   - Authority not granted → 403 Forbidden
//
// Usage:
//
//	router.GET("/v1/users",
//	    AuthenticationMiddleware(sessionUseCase, logger),
//	    AuthorizationMiddleware(rbacDomain.PermissionUserRead, logger),
//	    handler)
func AuthorizationMiddleware(authority string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !identity.Authorities.HasAuthority(authority) {
			logger.Debug("authorization failed: missing authority",
				slog.String("username", identity.Principal.Username),
				slog.String("authority", authority),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
