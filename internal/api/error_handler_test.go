package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return rec.Code, body.Detail
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unauthenticated answers 403", domain.ErrUnauthenticated, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"event not found", domain.ErrEventNotFound, http.StatusNotFound},
		{"registration not found", domain.ErrRegistrationNotFound, http.StatusNotFound},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound},
		{"image not found", domain.ErrImageNotFound, http.StatusNotFound},
		{"unknown provider", domain.ErrUnknownProvider, http.StatusNotFound},
		{"ticket not ready", domain.ErrTicketNotReady, http.StatusNotFound},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"duplicate registration", domain.ErrAlreadyRegistered, http.StatusBadRequest},
		{"invalid payment status", domain.ErrInvalidPaymentStatus, http.StatusBadRequest},
		{"invalid verification code", domain.ErrInvalidVerificationCode, http.StatusBadRequest},
		{"invalid oauth state", domain.ErrInvalidState, http.StatusBadRequest},
		{"dependency failure", domain.ErrDependencyFailure, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := render(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("want %d, got %d", tc.wantCode, code)
			}
		})
	}
}

func TestErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	wrapped := errors.Join(errors.New("lookup failed"), domain.ErrEventNotFound)
	code, detail := render(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", code)
	}
	if detail != "event not found" {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestErrorHandler_DependencyFailureSanitized(t *testing.T) {
	_, detail := render(t, domain.ErrDependencyFailure)
	if detail != "service dependency unavailable" {
		t.Fatalf("provider detail leaked: %q", detail)
	}
}

func TestErrorHandler_EchoHTTPErrorsPassThrough(t *testing.T) {
	code, detail := render(t, echo.NewHTTPError(http.StatusBadRequest, "title is required"))
	if code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", code)
	}
	if detail != "title is required" {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	code, detail := render(t, errors.New("driver: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", code)
	}
	if detail != "internal server error" {
		t.Fatalf("cause leaked to client: %q", detail)
	}
}
