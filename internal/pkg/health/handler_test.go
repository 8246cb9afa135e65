package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpa-app/jumpa/internal/pkg/logger"
)

func TestNewPingHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	handler := NewPingHandler("agent-test")
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "agent-test", info.ServiceName)
	assert.False(t, info.ServerTime.IsZero())
}

func TestRegisterHealthEndpoints(t *testing.T) {
	e := echo.New()
	RegisterHealthEndpoints(e, "agent-test")

	for _, path := range []string{"/ping", "/health", "/healthz", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

type stubChecker struct {
	err error
}

func (s stubChecker) CheckHealth(ctx context.Context) error { return s.err }

func TestHealthService_AllHealthy(t *testing.T) {
	svc := NewHealthService(logger.NewNopLogger())
	svc.AddChecker("redis", stubChecker{})
	svc.AddChecker("postgres", stubChecker{})

	resp := svc.CheckAllHealth(context.Background())
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Dependencies["redis"].Status)
	assert.Equal(t, "healthy", resp.Dependencies["postgres"].Status)
}

func TestHealthService_OneUnhealthy(t *testing.T) {
	svc := NewHealthService(logger.NewNopLogger())
	svc.AddChecker("redis", stubChecker{})
	svc.AddChecker("nats", stubChecker{err: errors.New("nats not connected")})

	resp := svc.CheckAllHealth(context.Background())
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "healthy", resp.Dependencies["redis"].Status)
	assert.Equal(t, "unhealthy", resp.Dependencies["nats"].Status)
	assert.Equal(t, "nats not connected", resp.Dependencies["nats"].Error)
}

func TestRegisterDetailedHealthEndpoints(t *testing.T) {
	svc := NewHealthService(logger.NewNopLogger())
	svc.AddChecker("redis", stubChecker{err: errors.New("down")})

	e := echo.New()
	RegisterDetailedHealthEndpoints(e, "agent-test", "1.0.0", svc)

	req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
