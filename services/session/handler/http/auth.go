package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/utils"
	"github.com/jumpa-app/jumpa/services/registry"
)

// AuthHandler issues session tokens against the participant registry
type AuthHandler struct {
	registryUC registry.RegistryUC
	logger     *logger.ZapLogger
}

// NewAuthHandler creates the auth HTTP handler
func NewAuthHandler(registryUC registry.RegistryUC, l *logger.ZapLogger) *AuthHandler {
	return &AuthHandler{registryUC: registryUC, logger: l}
}

// IssueToken handles POST /v1/auth/token
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req struct {
		MSISDN string `json:"msisdn"`
		APIKey string `json:"api_key"`
	}
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.MSISDN == "" || req.APIKey == "" {
		return utils.BadRequestResponse(c, "msisdn and api_key are required")
	}

	resp, err := h.registryUC.IssueToken(c.Request().Context(), req.MSISDN, req.APIKey)
	if err != nil {
		if errors.Is(err, errs.ErrStoreUnauthorized) {
			return utils.UnauthorizedResponse(c, "Invalid credentials")
		}
		h.logger.Error("failed to issue token", logger.Err(err))
		return utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Failed to issue token")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Token issued", resp)
}
