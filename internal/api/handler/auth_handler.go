package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/metrics"
	"github.com/clubhub/events-api/internal/core/ports"
)

// AuthHandler handles the authenticated-identity endpoint and the social
// login flows.
type AuthHandler struct {
	users  ports.UserService
	social ports.SocialService
}

func NewAuthHandler(users ports.UserService, social ports.SocialService) *AuthHandler {
	return &AuthHandler{users: users, social: social}
}

type socialCallbackQuery struct {
	Code  string `query:"code"  validate:"required"`
	State string `query:"state" validate:"required"`
}

// Me handles GET /api/v1/auth/me.
//
// @Summary      Get the user behind the presented credentials
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	user, err := h.users.Me(c.Request().Context(), claim)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SocialLogin handles GET /api/v1/auth/:provider/login.
//
// @Summary      Redirect to the provider's authorization page
// @Tags         auth
// @Param        provider  path  string  true  "Provider name (google, microsoft)"
// @Success      302
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/auth/{provider}/login [get]
func (h *AuthHandler) SocialLogin(c echo.Context) error {
	url, err := h.social.LoginURL(c.Request().Context(), c.Param("provider"))
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// SocialCallback handles GET /api/v1/auth/:provider/callback.
//
// @Summary      Complete the OAuth code exchange
// @Tags         auth
// @Produce      json
// @Param        provider  path      string  true  "Provider name (google, microsoft)"
// @Param        code      query     string  true  "Authorization code"
// @Param        state     query     string  true  "State nonce from the login redirect"
// @Success      200       {object}  ports.TokenBundle
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/v1/auth/{provider}/callback [get]
func (h *AuthHandler) SocialCallback(c echo.Context) error {
	provider := c.Param("provider")

	var q socialCallbackQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tokens, err := h.social.Callback(c.Request().Context(), provider, q.Code, q.State)
	if err != nil {
		metrics.SocialLoginsTotal.WithLabelValues(provider, "failure").Inc()
		return err
	}
	metrics.SocialLoginsTotal.WithLabelValues(provider, "success").Inc()
	return c.JSON(http.StatusOK, tokens)
}
