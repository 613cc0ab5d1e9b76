package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/clubhub/events-api/internal/core/domain"
)

func TestVerificationHandler_Send_EmailVariant(t *testing.T) {
	var sent string
	stub := &stubVerificationService{
		sendEmailFn: func(ctx context.Context, email string) error {
			sent = email
			return nil
		},
	}
	h := NewVerificationHandler(stub)

	body := strings.NewReader(`{"method":"email","email":"a@b.example"}`)
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/auth/verification/send-verification", body)

	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sent != "a@b.example" {
		t.Fatalf("email not forwarded: %q", sent)
	}
}

func TestVerificationHandler_Send_PhoneVariant(t *testing.T) {
	var sent string
	stub := &stubVerificationService{
		sendPhoneFn: func(ctx context.Context, phone string) error {
			sent = phone
			return nil
		},
	}
	h := NewVerificationHandler(stub)

	body := strings.NewReader(`{"method":"phone","phone":"+919876543210"}`)
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/verification/send-verification", body)

	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if sent != "+919876543210" {
		t.Fatalf("phone not forwarded: %q", sent)
	}
}

func TestVerificationHandler_Send_EmailVariantWithoutEmail(t *testing.T) {
	h := NewVerificationHandler(&stubVerificationService{})

	body := strings.NewReader(`{"method":"email"}`)
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/verification/send-verification", body)

	err := h.Send(c)
	if err == nil || !strings.Contains(err.Error(), "email is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerificationHandler_Send_UnknownMethod(t *testing.T) {
	h := NewVerificationHandler(&stubVerificationService{})

	body := strings.NewReader(`{"method":"carrier-pigeon"}`)
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/verification/send-verification", body)

	err := h.Send(c)
	if err == nil || !strings.Contains(err.Error(), "method must be one of") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerificationHandler_Verify_Success(t *testing.T) {
	stub := &stubVerificationService{
		verifyEmailFn: func(ctx context.Context, email, code string) error {
			if email != "a@b.example" || code != "123456" {
				t.Fatalf("args not forwarded: %s %s", email, code)
			}
			return nil
		},
	}
	h := NewVerificationHandler(stub)

	body := strings.NewReader(`{"method":"email","email":"a@b.example","code":"123456"}`)
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/auth/verification/verify-code", body)

	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestVerificationHandler_Verify_WrongCode(t *testing.T) {
	stub := &stubVerificationService{
		verifyPhoneFn: func(ctx context.Context, phone, code string) error {
			return domain.ErrInvalidVerificationCode
		},
	}
	h := NewVerificationHandler(stub)

	body := strings.NewReader(`{"method":"phone","phone":"+919876543210","code":"000000"}`)
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/verification/verify-code", body)

	if err := h.Verify(c); !errors.Is(err, domain.ErrInvalidVerificationCode) {
		t.Fatalf("want ErrInvalidVerificationCode, got %v", err)
	}
}

func TestVerificationHandler_Verify_CodeLength(t *testing.T) {
	h := NewVerificationHandler(&stubVerificationService{})

	body := strings.NewReader(`{"method":"email","email":"a@b.example","code":"12"}`)
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/verification/verify-code", body)

	err := h.Verify(c)
	if err == nil || !strings.Contains(err.Error(), "code must be exactly 6") {
		t.Fatalf("unexpected error: %v", err)
	}
}
