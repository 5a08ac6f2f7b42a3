package httputil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Listing defaults shared by every paginated endpoint.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ParsePagination reads the offset and limit query parameters.
// offset defaults to 0 and must be non-negative; limit defaults to DefaultLimit and
// must lie in [1, MaxLimit]. Both values are zero when an error is returned.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, ok = queryInt(c, "limit", DefaultLimit)
	if !ok || limit < 1 || limit > MaxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return offset, limit, nil
}

// ParseTimeQuery reads an optional RFC3339 query parameter and normalizes it to UTC.
// A missing or empty parameter yields nil.
func ParseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)", name)
	}

	parsed = parsed.UTC()
	return &parsed, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}
