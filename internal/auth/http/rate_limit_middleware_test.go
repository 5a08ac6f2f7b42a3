package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(LoginRateLimitMiddleware(ctx, rps, burst, testLogger()))
	router.POST("/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func postLogin(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10.0, 20)

	for i := 0; i < 5; i++ {
		w := postLogin(router, "192.0.2.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLoginRateLimitMiddleware_BlocksRequestsExceedingBurst(t *testing.T) {
	router := newRateLimitedRouter(t, 0.5, 2)

	for i := 0; i < 2; i++ {
		w := postLogin(router, "192.0.2.1:1234")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := postLogin(router, "192.0.2.1:1234")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestLoginRateLimitMiddleware_IndependentPerIP(t *testing.T) {
	router := newRateLimitedRouter(t, 0.5, 1)

	assert.Equal(t, http.StatusOK, postLogin(router, "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, postLogin(router, "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusOK, postLogin(router, "192.0.2.2:1234").Code)
}

func TestRateLimiterStore_EvictIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	store.getLimiter("192.0.2.1")
	store.getLimiter("192.0.2.2")

	stale, _ := store.limiters.Load("192.0.2.1")
	entry := stale.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.evictIdle(time.Now().Add(-time.Hour))

	_, ok := store.limiters.Load("192.0.2.1")
	assert.False(t, ok)
	_, ok = store.limiters.Load("192.0.2.2")
	assert.True(t, ok)
}
