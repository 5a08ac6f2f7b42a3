// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/allisson/gatekeeper/internal/audit/http"
	authHTTP "github.com/allisson/gatekeeper/internal/auth/http"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	"github.com/allisson/gatekeeper/internal/config"
	"github.com/allisson/gatekeeper/internal/metrics"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	rbacHTTP "github.com/allisson/gatekeeper/internal/rbac/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. db is pinged by the readiness endpoint.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// SetupRouter builds the Gin engine with every API route.
//
// Global middleware, in order: recovery, request id, request logging, CORS (when enabled),
// HTTP metrics (when a provider is given) and request origin capture for the audit trail.
// Protected routes authenticate the Bearer token and then require a single authority.
// /v1/auth/me is the exception: it validates the token without the authentication middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	sessionHandler *authHTTP.SessionHandler,
	principalHandler *rbacHTTP.PrincipalHandler,
	roleHandler *rbacHTTP.RoleHandler,
	permissionHandler *rbacHTTP.PermissionHandler,
	auditLogHandler *auditHTTP.AuditLogHandler,
	sessionUseCase authUseCase.SessionUseCase,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger)
	if corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.Use(auditHTTP.OriginMiddleware())

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authn := authHTTP.AuthenticationMiddleware(sessionUseCase, s.logger)
	requireAuthority := func(authority string) gin.HandlerFunc {
		return authHTTP.AuthorizationMiddleware(authority, s.logger)
	}

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	{
		public := auth.Group("")
		if cfg.RateLimitLoginEnabled {
			public.Use(authHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				s.logger,
			))
		}
		public.POST("/login", sessionHandler.LoginHandler)
		public.POST("/refresh", sessionHandler.RefreshHandler)

		// Me reads and checks the Bearer token itself so a deleted subject answers 404.
		auth.GET("/me", sessionHandler.MeHandler)
	}

	protected := v1.Group("", authn)
	{
		protected.GET("/audit-logs", requireAuthority(rbacDomain.PermissionAuditLogRead), auditLogHandler.ListHandler)

		users := protected.Group("/users")
		users.GET("", requireAuthority(rbacDomain.PermissionUserRead), principalHandler.ListHandler)
		users.GET("/:id", requireAuthority(rbacDomain.PermissionUserRead), principalHandler.GetHandler)
		users.POST("/admin", requireAuthority(rbacDomain.PermissionUserCreate), principalHandler.CreateAdminHandler)
		users.DELETE("/:id", requireAuthority(rbacDomain.PermissionUserDelete), principalHandler.DeleteHandler)
		users.DELETE("/:id/hard", requireAuthority(rbacDomain.PermissionUserHardDelete), principalHandler.PurgeHandler)

		protected.GET("/roles", requireAuthority(rbacDomain.PermissionRoleRead), roleHandler.ListHandler)
		protected.GET("/permissions", requireAuthority(rbacDomain.PermissionPermissionRead), permissionHandler.ListHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness; the service is ready when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
