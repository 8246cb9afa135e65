package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimiter(t *testing.T, limit int) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	e := echo.New()
	e.GET("/v1/auth/token", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, IPRateLimiter(limit, time.Minute, client))

	return e, mr
}

func doRequest(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/token", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	e, _ := setupRateLimiter(t, 3)

	for i := 0; i < 3; i++ {
		rec := doRequest(e)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	e, _ := setupRateLimiter(t, 2)

	doRequest(e)
	doRequest(e)
	rec := doRequest(e)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_ResetsAfterPeriod(t *testing.T) {
	e, mr := setupRateLimiter(t, 1)

	doRequest(e)
	rec := doRequest(e)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	mr.FastForward(2 * time.Minute)

	rec = doRequest(e)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_SeparateIdentifiers(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	e := echo.New()
	e.GET("/v1/auth/token", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, IPRateLimiter(1, time.Minute, client))

	first := httptest.NewRequest(http.MethodGet, "/v1/auth/token", nil)
	first.Header.Set("X-Real-IP", "10.0.0.1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/v1/auth/token", nil)
	second.Header.Set("X-Real-IP", "10.0.0.2")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}
