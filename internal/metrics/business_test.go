package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestBusinessMetrics_DurationBuckets(t *testing.T) {
	provider, err := NewProvider("bucket_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "bucket_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordDuration(ctx, "auth", "login", 300*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "auth", "identify", 2*time.Millisecond, StatusSuccess)

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	output := w.Body.String()

	assertBizMetricLine(t, output, `bucket_test_operation_duration_seconds_bucket`,
		`operation="login".*le="0.25"`, `0`)
	assertBizMetricLine(t, output, `bucket_test_operation_duration_seconds_bucket`,
		`operation="login".*le="0.5"`, `1`)
	assertBizMetricLine(t, output, `bucket_test_operation_duration_seconds_bucket`,
		`operation="identify".*le="0.005"`, `1`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	m := NewNoOpBusinessMetrics()
	assert.IsType(t, NoOpBusinessMetrics{}, m)

	assert.NotPanics(t, func() {
		Observe(context.Background(), m, "auth", "login", time.Now(), errors.New("boom"))
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()
	denied := apperrors.Wrap(apperrors.ErrUnauthorized, "invalid username or password")

	Observe(ctx, bm, "auth", "login", start, nil)
	Observe(ctx, bm, "auth", "login", start, nil)
	Observe(ctx, bm, "auth", "login", start, denied)
	Observe(ctx, bm, "auth", "login", start, errors.New("connection refused"))
	Observe(ctx, bm, "rbac", "resolve_authorities", start, nil)
	Observe(ctx, bm, "rbac", "create_admin", start, apperrors.ErrConflict)

	// Metrics should be recorded without errors
	// Verify metrics in Prometheus registry
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	// Check operation counts
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="auth".*operation="login".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="auth".*operation="login".*status="rejected"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="auth".*operation="login".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="rbac".*operation="create_admin".*status="rejected"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="rbac".*operation="resolve_authorities".*status="success"`,
		`1`,
	)

	// Check durations (existence)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="auth".*operation="login".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_sum`,
		`domain="auth".*operation="login".*status="success"`,
		``,
	)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, StatusSuccess},
		{"unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "invalid refresh token"), StatusRejected},
		{"forbidden", apperrors.ErrForbidden, StatusRejected},
		{"locked", apperrors.ErrLocked, StatusRejected},
		{"not found", apperrors.ErrNotFound, StatusRejected},
		{"conflict", apperrors.ErrConflict, StatusRejected},
		{"invalid input", apperrors.ErrInvalidInput, StatusRejected},
		{"fault", errors.New("driver: bad connection"), StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
