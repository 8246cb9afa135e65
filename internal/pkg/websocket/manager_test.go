package websocket

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtpkg "github.com/jumpa-app/jumpa/internal/pkg/jwt"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

var testJWTConfig = models.JWTConfig{
	Secret:     "test-secret",
	Expiration: 60,
	Issuer:     "jumpa-test",
}

func upgradeContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestAuthenticateClient_ValidToken(t *testing.T) {
	m := NewManager(testJWTConfig, logger.NewNopLogger())

	pid := uuid.New()
	token, _, err := jwtpkg.GenerateToken(pid, "+628111111111", models.RoleSeeker, testJWTConfig)
	require.NoError(t, err)

	client, err := m.authenticateClient(upgradeContext("Bearer " + token))
	require.NoError(t, err)
	assert.Equal(t, pid.String(), client.ParticipantID)
	assert.Equal(t, string(models.RoleSeeker), client.Role)
}

func TestAuthenticateClient_MissingHeader(t *testing.T) {
	m := NewManager(testJWTConfig, logger.NewNopLogger())

	_, err := m.authenticateClient(upgradeContext(""))
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthenticateClient_BadFormat(t *testing.T) {
	m := NewManager(testJWTConfig, logger.NewNopLogger())

	_, err := m.authenticateClient(upgradeContext("Basic abc123"))
	require.Error(t, err)
}

func TestAuthenticateClient_WrongSecret(t *testing.T) {
	m := NewManager(testJWTConfig, logger.NewNopLogger())

	other := testJWTConfig
	other.Secret = "different-secret"
	token, _, err := jwtpkg.GenerateToken(uuid.New(), "+628111111111", models.RoleProvider, other)
	require.NoError(t, err)

	_, err = m.authenticateClient(upgradeContext("Bearer " + token))
	require.Error(t, err)
}

func TestClientRegistry(t *testing.T) {
	m := NewManager(testJWTConfig, logger.NewNopLogger())

	client := &models.WebSocketClient{ParticipantID: "p1", Role: "seeker"}
	m.AddClient(client)

	got, ok := m.GetClient("p1")
	require.True(t, ok)
	assert.Equal(t, client, got)

	m.RemoveClient("p1")
	_, ok = m.GetClient("p1")
	assert.False(t, ok)
}

func TestNotifyClient_UnknownParticipantIsNoop(t *testing.T) {
	m := NewManager(testJWTConfig, logger.NewNopLogger())

	// Must not panic or block when nobody is connected.
	m.NotifyClient("absent", "proximity_alert", map[string]string{"x": "y"})
}
