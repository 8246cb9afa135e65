package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/jumpa-app/jumpa/internal/pkg/metrics"
	"github.com/jumpa-app/jumpa/internal/pkg/middleware"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/services/session/handler/http"
	"github.com/jumpa-app/jumpa/services/session/handler/nats"
	"github.com/jumpa-app/jumpa/services/session/handler/websocket"
)

// Handler coordinates all protocol handlers for the session service
type Handler struct {
	sessionHandler *http.SessionHandler
	authHandler    *http.AuthHandler
	wsManager      *websocket.WebSocketManager
	natsHandler    *nats.NatsHandler
	metrics        *metrics.Metrics
	redisClient    *redis.Client
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	sessionHandler *http.SessionHandler,
	authHandler *http.AuthHandler,
	wsManager *websocket.WebSocketManager,
	natsHandler *nats.NatsHandler,
	m *metrics.Metrics,
	redisClient *redis.Client,
	cfg *models.Config,
) *Handler {
	return &Handler{
		sessionHandler: sessionHandler,
		authHandler:    authHandler,
		wsManager:      wsManager,
		natsHandler:    natsHandler,
		metrics:        m,
		redisClient:    redisClient,
		cfg:            cfg,
	}
}

// GetJWTMiddleware returns the configured JWT middleware for HTTP requests
func (h *Handler) GetJWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(h.cfg.JWT.Secret),
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}
			if participantID, exists := claims["participant_id"]; exists {
				c.Set("participant_id", participantID)
			}
			if role, exists := claims["role"]; exists {
				c.Set("role", role)
			}
		},
	})
}

// InitNATSConsumers starts the proximity alert fan-out to connected clients
func (h *Handler) InitNATSConsumers() error {
	return h.natsHandler.InitConsumers()
}

// RegisterRoutes registers all protocol handlers and their routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Public routes (no authentication required)
	e.GET("/metrics", h.metrics.Handler())

	authGroup := e.Group("/v1/auth")
	if h.redisClient != nil {
		authGroup.Use(middleware.IPRateLimiter(10, time.Minute, h.redisClient))
	}
	authGroup.POST("/token", h.authHandler.IssueToken)

	// Protected routes with JWT middleware
	protected := e.Group("/v1", h.GetJWTMiddleware())

	sessionGroup := protected.Group("/session")
	sessionGroup.POST("", h.sessionHandler.EnterSession)
	sessionGroup.DELETE("", h.sessionHandler.ExitSession)
	sessionGroup.PUT("/destination", h.sessionHandler.ChangeDestination)
	sessionGroup.PUT("/role", h.sessionHandler.ChangeRole)
	sessionGroup.GET("/state", h.sessionHandler.GetState)

	protected.GET("/nearby", h.sessionHandler.GetNearby)

	// WebSocket route; the connection manager authenticates the
	// Authorization header during the upgrade handshake.
	e.GET("/ws", h.wsManager.HandleWebSocket)
}
