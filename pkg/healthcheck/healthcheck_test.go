package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthCheck_AllHealthy(t *testing.T) {
	hc := New("1.0.0", "test", zap.NewNop())
	hc.Register("always", NewCustomChecker(func(ctx context.Context) error { return nil }))

	resp := hc.Check(context.Background())

	assert.Equal(t, StatusHealthy, resp.Status)
	require.Len(t, resp.Checks, 1)
	assert.Equal(t, "always", resp.Checks[0].Name)
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestHealthCheck_FailingCheckMarksUnhealthy(t *testing.T) {
	hc := New("1.0.0", "test", zap.NewNop())
	hc.Register("ok", NewCustomChecker(func(ctx context.Context) error { return nil }))
	hc.Register("broken", NewCustomChecker(func(ctx context.Context) error { return errors.New("boom") }))

	rec := httptest.NewRecorder()
	hc.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	checks := body["checks"].([]interface{})
	require.Len(t, checks, 2)
	assert.Equal(t, "broken", checks[0].(map[string]interface{})["name"])
	assert.Equal(t, "boom", checks[0].(map[string]interface{})["message"])
	assert.Contains(t, body, "total_duration_ms")
}

func TestHealthCheck_ResponseIsCached(t *testing.T) {
	calls := 0
	hc := New("1.0.0", "test", zap.NewNop())
	hc.Register("counting", NewCustomChecker(func(ctx context.Context) error {
		calls++
		return nil
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())
	assert.Equal(t, 1, calls)

	hc.SetCacheTTL(0)
	hc.Check(context.Background())
	assert.Equal(t, 2, calls)
}

func TestRedisChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	check := NewRedisChecker(client).Check(context.Background())
	assert.Equal(t, StatusHealthy, check.Status)

	mr.Close()
	check = NewRedisChecker(client).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, check.Status)
	assert.NotEmpty(t, check.Message)
}
