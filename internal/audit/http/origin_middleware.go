package http

import (
	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
)

// OriginMiddleware stores the client address, request path and method in the request
// context so audited operations can record where they were called from.
func OriginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auditDomain.WithOrigin(c.Request.Context(), auditDomain.Origin{
			ClientAddress: c.ClientIP(),
			Path:          c.Request.URL.Path,
			Method:        c.Request.Method,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
