package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes. Missing or
	// invalid credentials answer 403, not 401; clients depend on it.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusForbidden, "could not validate credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "not enough permissions"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "event not found"
	case errors.Is(err, domain.ErrRegistrationNotFound):
		return http.StatusNotFound, "registration not found"
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "blog post not found"
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "gallery image not found"
	case errors.Is(err, domain.ErrUnknownProvider):
		return http.StatusNotFound, "unknown authentication provider"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusBadRequest, "already registered for this event"
	case errors.Is(err, domain.ErrTicketNotReady):
		return http.StatusNotFound, "ticket not ready"
	case errors.Is(err, domain.ErrInvalidPaymentStatus):
		return http.StatusBadRequest, "invalid payment status"
	case errors.Is(err, domain.ErrInvalidVerificationCode):
		return http.StatusBadRequest, "invalid verification code"
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest, "invalid oauth state"
	case errors.Is(err, domain.ErrDependencyFailure):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("dependency failure")
		return http.StatusInternalServerError, "service dependency unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
