package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/metrics"
	"github.com/clubhub/events-api/internal/core/ports"
)

// VerificationHandler handles the verification-code endpoints. The method
// field tags the request variant; each variant has its own required fields
// and maps to exactly one service method.
type VerificationHandler struct {
	service ports.VerificationService
}

func NewVerificationHandler(service ports.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

type sendVerificationRequest struct {
	Method string `json:"method" validate:"required,oneof=email phone"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Phone  string `json:"phone"  validate:"omitempty,e164"`
}

type verifyCodeRequest struct {
	Method string `json:"method" validate:"required,oneof=email phone"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Phone  string `json:"phone"  validate:"omitempty,e164"`
	Code   string `json:"code"   validate:"required,len=6"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Send handles POST /api/v1/auth/verification/send-verification.
//
// @Summary      Send a verification code by email or SMS
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendVerificationRequest  true  "Destination to verify"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/auth/verification/send-verification [post]
func (h *VerificationHandler) Send(c echo.Context) error {
	var req sendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var err error
	switch req.Method {
	case "email":
		if req.Email == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "email is required for email verification")
		}
		err = h.service.SendEmailCode(c.Request().Context(), req.Email)
	case "phone":
		if req.Phone == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "phone is required for phone verification")
		}
		err = h.service.SendPhoneCode(c.Request().Context(), req.Phone)
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.VerificationCodesTotal.WithLabelValues(req.Method, "send", result).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "verification code sent"})
}

// Verify handles POST /api/v1/auth/verification/verify-code.
//
// @Summary      Confirm a verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyCodeRequest  true  "Destination and code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/auth/verification/verify-code [post]
func (h *VerificationHandler) Verify(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var err error
	switch req.Method {
	case "email":
		if req.Email == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "email is required for email verification")
		}
		err = h.service.VerifyEmailCode(c.Request().Context(), req.Email, req.Code)
	case "phone":
		if req.Phone == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "phone is required for phone verification")
		}
		err = h.service.VerifyPhoneCode(c.Request().Context(), req.Phone, req.Code)
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.VerificationCodesTotal.WithLabelValues(req.Method, "verify", result).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "verification successful"})
}
