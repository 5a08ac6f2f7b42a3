package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/gatekeeper/internal/httputil"
)

func newQueryContext(url string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const (
		badOffset = "invalid offset parameter: must be a non-negative integer"
		badLimit  = "invalid limit parameter: must be between 1 and 100"
	)

	tests := []struct {
		url    string
		offset int
		limit  int
		errMsg string
	}{
		{url: "/", offset: 0, limit: httputil.DefaultLimit},
		{url: "/?offset=10&limit=20", offset: 10, limit: 20},
		{url: "/?limit=100", offset: 0, limit: httputil.MaxLimit},
		{url: "/?offset=-1", errMsg: badOffset},
		{url: "/?offset=abc", errMsg: badOffset},
		{url: "/?offset=", errMsg: badOffset},
		{url: "/?limit=0", errMsg: badLimit},
		{url: "/?limit=101", errMsg: badLimit},
		{url: "/?limit=", errMsg: badLimit},
		{url: "/?limit=xyz", errMsg: badLimit},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			offset, limit, err := httputil.ParsePagination(newQueryContext(tt.url))

			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
				assert.Zero(t, offset)
				assert.Zero(t, limit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestParseTimeQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("absent", func(t *testing.T) {
		value, err := httputil.ParseTimeQuery(newQueryContext("/"), "created_at_from")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("normalized to UTC", func(t *testing.T) {
		value, err := httputil.ParseTimeQuery(newQueryContext("/?created_at_from=2026-02-01T03:00:00%2B03:00"), "created_at_from")
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *value)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := httputil.ParseTimeQuery(newQueryContext("/?created_at_to=yesterday"), "created_at_to")
		assert.EqualError(t, err, "invalid created_at_to format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)")
	})
}
