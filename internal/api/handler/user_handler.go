package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/metrics"
	"github.com/clubhub/events-api/internal/core/ports"
)

// UserHandler handles HTTP requests scoped to the caller's own user record.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"  validate:"omitempty,e164"`
	Branch *string `json:"branch"`
	Year   *string `json:"year"`
}

// Me handles GET /api/v1/users/me.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	user, err := h.service.Me(c.Request().Context(), claim)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe handles PATCH /api/v1/users/me.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateMe(c.Request().Context(), claim, ports.UpdateUserInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Branch: req.Branch,
		Year:   req.Year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UploadAvatar handles POST /api/v1/users/me/avatar.
//
// @Summary      Upload the caller's profile picture
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Avatar image"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	file, err := formUpload(c, "file")
	if err != nil {
		return err
	}

	user, err := h.service.UploadAvatar(c.Request().Context(), claim, file)
	if err != nil {
		return err
	}
	metrics.UploadsTotal.WithLabelValues("avatar").Inc()
	return c.JSON(http.StatusOK, user)
}
