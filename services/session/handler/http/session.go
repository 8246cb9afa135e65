package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jumpa-app/jumpa/internal/pkg/circuitbreaker"
	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/middleware"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/utils"
	"github.com/jumpa-app/jumpa/services/presence"
	"github.com/jumpa-app/jumpa/services/session"
)

// SessionHandler serves the session lifecycle over HTTP. The WebSocket
// surface is the primary one; these endpoints exist for non-streaming
// clients and operational tooling.
type SessionHandler struct {
	sessionUC session.SessionUC
	store     presence.Store
	breakers  *circuitbreaker.Manager
	logger    *logger.ZapLogger
}

// NewSessionHandler creates the session HTTP handler
func NewSessionHandler(
	sessionUC session.SessionUC,
	store presence.Store,
	breakers *circuitbreaker.Manager,
	l *logger.ZapLogger,
) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		store:     store,
		breakers:  breakers,
		logger:    l,
	}
}

// EnterSession handles POST /v1/session
func (h *SessionHandler) EnterSession(c echo.Context) error {
	ctx := middleware.Context(c)
	middleware.SetTransactionName(ctx, "Session.Enter")

	var req models.SessionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	req.ParticipantID = participantIDFrom(c, req.ParticipantID)
	middleware.SetParticipantID(c, req.ParticipantID)

	if err := h.sessionUC.EnterSession(ctx, req); err != nil {
		middleware.NoticeError(c, err)
		h.logger.Warn("failed to enter session",
			logger.String("participant_id", req.ParticipantID),
			logger.Err(err))
		return sessionErrorResponse(c, err)
	}

	path := models.Path{
		Partition:     models.Partition{Role: req.Role, Destination: req.Destination},
		ParticipantID: req.ParticipantID,
	}
	middleware.SetSessionPath(c, path.String())
	return utils.SuccessResponse(c, http.StatusCreated, "Session entered", h.sessionUC.State(ctx))
}

// ExitSession handles DELETE /v1/session
func (h *SessionHandler) ExitSession(c echo.Context) error {
	ctx := middleware.Context(c)
	middleware.SetTransactionName(ctx, "Session.Exit")

	if err := h.sessionUC.ExitSession(ctx); err != nil {
		middleware.NoticeError(c, err)
		h.logger.Warn("failed to exit session", logger.Err(err))
		return sessionErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Session exited", nil)
}

// ChangeDestination handles PUT /v1/session/destination
func (h *SessionHandler) ChangeDestination(c echo.Context) error {
	ctx := middleware.Context(c)
	middleware.SetTransactionName(ctx, "Session.ChangeDestination")

	var req struct {
		Destination string `json:"destination"`
	}
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	middleware.AddAttribute(c, "session.destination", req.Destination)

	if err := h.sessionUC.ChangeDestination(ctx, req.Destination); err != nil {
		middleware.NoticeError(c, err)
		return sessionErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Destination changed", h.sessionUC.State(ctx))
}

// ChangeRole handles PUT /v1/session/role
func (h *SessionHandler) ChangeRole(c echo.Context) error {
	ctx := middleware.Context(c)
	middleware.SetTransactionName(ctx, "Session.ChangeRole")

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	middleware.AddAttribute(c, "session.role", string(req.Role))

	if err := h.sessionUC.ChangeRole(ctx, req.Role); err != nil {
		middleware.NoticeError(c, err)
		return sessionErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Role changed", h.sessionUC.State(ctx))
}

// GetState handles GET /v1/session/state
func (h *SessionHandler) GetState(c echo.Context) error {
	state := h.sessionUC.State(middleware.Context(c))
	return utils.SuccessResponse(c, http.StatusOK, "Session state", state)
}

// GetNearby handles GET /v1/nearby. The directory query runs behind a
// circuit breaker so a degraded store fails fast instead of stacking up
// request timeouts.
func (h *SessionHandler) GetNearby(c echo.Context) error {
	role := models.Role(c.QueryParam("role"))
	destination := c.QueryParam("destination")
	if !role.Valid() || destination == "" {
		return utils.BadRequestResponse(c, "role and destination are required")
	}

	lat, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "invalid latitude")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "invalid longitude")
	}
	radiusKm := 1.0
	if raw := c.QueryParam("radius_km"); raw != "" {
		if radiusKm, err = strconv.ParseFloat(raw, 64); err != nil || radiusKm <= 0 {
			return utils.BadRequestResponse(c, "invalid radius_km")
		}
	}

	middleware.SetTransactionName(middleware.Context(c), "Session.Nearby")
	partition := models.Partition{Role: role, Destination: destination}
	var nearby []models.NearbyEntity
	err = h.breakers.Execute(middleware.Context(c), "presence-nearby", func(ctx context.Context) error {
		var qErr error
		nearby, qErr = h.store.Nearby(ctx, partition, lat, lng, radiusKm)
		return qErr
	})
	if err != nil {
		if err == circuitbreaker.ErrCircuitBreakerOpen || err == circuitbreaker.ErrTooManyRequests {
			return utils.ErrorResponseHandler(c, http.StatusServiceUnavailable, "Directory temporarily unavailable")
		}
		middleware.NoticeError(c, err)
		h.logger.Warn("nearby query failed", logger.Err(err))
		return utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Failed to query nearby participants")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Nearby participants", nearby)
}

// participantIDFrom prefers the authenticated id from the JWT middleware
func participantIDFrom(c echo.Context, fallback string) string {
	if id, ok := c.Get("participant_id").(string); ok && id != "" {
		return id
	}
	return fallback
}

// sessionErrorResponse maps usecase errors onto HTTP statuses
func sessionErrorResponse(c echo.Context, err error) error {
	switch {
	case errs.IsTerminal(err):
		return utils.ErrorResponseHandler(c, http.StatusForbidden, err.Error())
	case errs.IsTransient(err):
		return utils.ErrorResponseHandler(c, http.StatusServiceUnavailable, err.Error())
	default:
		return utils.BadRequestResponse(c, err.Error())
	}
}
