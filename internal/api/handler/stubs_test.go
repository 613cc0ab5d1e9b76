package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/middleware"
	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/ports"
)

// --- Service stubs (function fields, one per interface method) ---

type stubEventService struct {
	createFn         func(ctx context.Context, claim *domain.Claim, in ports.CreateEventInput) (*domain.Event, error)
	listFn           func(ctx context.Context, offset, limit int) ([]*domain.Event, error)
	getFn            func(ctx context.Context, id string) (*domain.Event, error)
	updateFn         func(ctx context.Context, claim *domain.Claim, id string, in ports.UpdateEventInput) (*domain.Event, error)
	deleteFn         func(ctx context.Context, claim *domain.Claim, id string) (*domain.Event, error)
	togglePaidFn     func(ctx context.Context, claim *domain.Claim, id string, isPaid bool, price *int) (*domain.Event, error)
	uploadCoverFn    func(ctx context.Context, claim *domain.Claim, id string, file ports.Upload) (*domain.Event, error)
	markAttendanceFn func(ctx context.Context, claim *domain.Claim, eventID, userID string) (*domain.Registration, error)
}

func (s *stubEventService) Create(ctx context.Context, claim *domain.Claim, in ports.CreateEventInput) (*domain.Event, error) {
	return s.createFn(ctx, claim, in)
}
func (s *stubEventService) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	return s.listFn(ctx, offset, limit)
}
func (s *stubEventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.getFn(ctx, id)
}
func (s *stubEventService) Update(ctx context.Context, claim *domain.Claim, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	return s.updateFn(ctx, claim, id, in)
}
func (s *stubEventService) Delete(ctx context.Context, claim *domain.Claim, id string) (*domain.Event, error) {
	return s.deleteFn(ctx, claim, id)
}
func (s *stubEventService) TogglePaid(ctx context.Context, claim *domain.Claim, id string, isPaid bool, price *int) (*domain.Event, error) {
	return s.togglePaidFn(ctx, claim, id, isPaid, price)
}
func (s *stubEventService) UploadCover(ctx context.Context, claim *domain.Claim, id string, file ports.Upload) (*domain.Event, error) {
	return s.uploadCoverFn(ctx, claim, id, file)
}
func (s *stubEventService) MarkAttendance(ctx context.Context, claim *domain.Claim, eventID, userID string) (*domain.Registration, error) {
	return s.markAttendanceFn(ctx, claim, eventID, userID)
}

type stubRegistrationService struct {
	registerFn      func(ctx context.Context, claim *domain.Claim, eventID string) (*domain.Registration, error)
	listMineFn      func(ctx context.Context, claim *domain.Claim, offset, limit int) ([]*domain.Registration, error)
	getFn           func(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error)
	ticketURLFn     func(ctx context.Context, claim *domain.Claim, id string) (string, error)
	listByEventFn   func(ctx context.Context, claim *domain.Claim, eventID string, offset, limit int) ([]*domain.Registration, error)
	updatePaymentFn func(ctx context.Context, claim *domain.Claim, id string, status domain.PaymentStatus) (*domain.Registration, error)
	checkinStartFn  func(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error)
	checkinEndFn    func(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, claim *domain.Claim, eventID string) (*domain.Registration, error) {
	return s.registerFn(ctx, claim, eventID)
}
func (s *stubRegistrationService) ListMine(ctx context.Context, claim *domain.Claim, offset, limit int) ([]*domain.Registration, error) {
	return s.listMineFn(ctx, claim, offset, limit)
}
func (s *stubRegistrationService) Get(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error) {
	return s.getFn(ctx, claim, id)
}
func (s *stubRegistrationService) TicketURL(ctx context.Context, claim *domain.Claim, id string) (string, error) {
	return s.ticketURLFn(ctx, claim, id)
}
func (s *stubRegistrationService) ListByEvent(ctx context.Context, claim *domain.Claim, eventID string, offset, limit int) ([]*domain.Registration, error) {
	return s.listByEventFn(ctx, claim, eventID, offset, limit)
}
func (s *stubRegistrationService) UpdatePayment(ctx context.Context, claim *domain.Claim, id string, status domain.PaymentStatus) (*domain.Registration, error) {
	return s.updatePaymentFn(ctx, claim, id, status)
}
func (s *stubRegistrationService) MarkCheckinStart(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error) {
	return s.checkinStartFn(ctx, claim, id)
}
func (s *stubRegistrationService) MarkCheckinEnd(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error) {
	return s.checkinEndFn(ctx, claim, id)
}

type stubUserService struct {
	meFn           func(ctx context.Context, claim *domain.Claim) (*domain.User, error)
	updateMeFn     func(ctx context.Context, claim *domain.Claim, in ports.UpdateUserInput) (*domain.User, error)
	uploadAvatarFn func(ctx context.Context, claim *domain.Claim, file ports.Upload) (*domain.User, error)
}

func (s *stubUserService) Me(ctx context.Context, claim *domain.Claim) (*domain.User, error) {
	return s.meFn(ctx, claim)
}
func (s *stubUserService) UpdateMe(ctx context.Context, claim *domain.Claim, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateMeFn(ctx, claim, in)
}
func (s *stubUserService) UploadAvatar(ctx context.Context, claim *domain.Claim, file ports.Upload) (*domain.User, error) {
	return s.uploadAvatarFn(ctx, claim, file)
}

type stubSocialService struct {
	loginURLFn func(ctx context.Context, provider string) (string, error)
	callbackFn func(ctx context.Context, provider, code, state string) (*ports.TokenBundle, error)
}

func (s *stubSocialService) LoginURL(ctx context.Context, provider string) (string, error) {
	return s.loginURLFn(ctx, provider)
}
func (s *stubSocialService) Callback(ctx context.Context, provider, code, state string) (*ports.TokenBundle, error) {
	return s.callbackFn(ctx, provider, code, state)
}

type stubVerificationService struct {
	sendEmailFn   func(ctx context.Context, email string) error
	sendPhoneFn   func(ctx context.Context, phone string) error
	verifyEmailFn func(ctx context.Context, email, code string) error
	verifyPhoneFn func(ctx context.Context, phone, code string) error
}

func (s *stubVerificationService) SendEmailCode(ctx context.Context, email string) error {
	return s.sendEmailFn(ctx, email)
}
func (s *stubVerificationService) SendPhoneCode(ctx context.Context, phone string) error {
	return s.sendPhoneFn(ctx, phone)
}
func (s *stubVerificationService) VerifyEmailCode(ctx context.Context, email, code string) error {
	return s.verifyEmailFn(ctx, email, code)
}
func (s *stubVerificationService) VerifyPhoneCode(ctx context.Context, phone, code string) error {
	return s.verifyPhoneFn(ctx, phone, code)
}

// --- Context helpers ---

func newTestContext(t *testing.T, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withClaim(c echo.Context) *domain.Claim {
	claim := &domain.Claim{Subject: "sub-1", Email: "member@clubhub.example", Username: "member"}
	c.Set(middleware.ClaimContextKey, claim)
	return claim
}

// multipartBody builds a multipart form with a single file field.
func multipartBody(t *testing.T, field, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func newMultipartContext(t *testing.T, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
