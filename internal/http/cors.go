package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 12 * time.Hour

// createCORSMiddleware builds the CORS middleware, or returns nil when CORS is disabled
// or allowOriginsStr holds no origin.
//
// Access tokens travel in the Authorization header, so credentialed (cookie) requests are
// never allowed. A "*" entry allows every origin. Retry-After and WWW-Authenticate are
// exposed so browser clients can react to rate limiting and token challenges.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured, CORS will not be applied")
		return nil
	}

	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After", "WWW-Authenticate"},
		MaxAge:        corsMaxAge,
	}

	if slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
		logger.Warn("CORS enabled for every origin")
	} else {
		config.AllowOrigins = origins
		logger.Info("CORS enabled",
			slog.Int("origin_count", len(origins)),
			slog.Any("origins", origins))
	}

	return cors.New(config)
}

// parseOrigins splits a comma-separated origin list, dropping blanks.
func parseOrigins(originsStr string) []string {
	var origins []string
	for _, part := range strings.Split(originsStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
