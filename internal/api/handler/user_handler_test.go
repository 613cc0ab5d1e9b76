package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/ports"
)

func TestUserHandler_Me_Success(t *testing.T) {
	stub := &stubUserService{
		meFn: func(ctx context.Context, claim *domain.Claim) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: claim.Email}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/users/me", nil)
	withClaim(c)

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateMe_ForwardsFields(t *testing.T) {
	stub := &stubUserService{
		updateMeFn: func(ctx context.Context, claim *domain.Claim, in ports.UpdateUserInput) (*domain.User, error) {
			if in.Name == nil || *in.Name != "Asha" {
				t.Fatalf("name not forwarded: %+v", in)
			}
			if in.Branch != nil {
				t.Fatalf("branch should be nil")
			}
			return &domain.User{ID: "u-1", Name: *in.Name}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/api/v1/users/me", strings.NewReader(`{"name":"Asha"}`))
	withClaim(c)

	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateMe_RejectsBadPhone(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPatch, "/api/v1/users/me", strings.NewReader(`{"phone":"not-a-number"}`))
	withClaim(c)

	err := h.UpdateMe(c)
	if err == nil || !strings.Contains(err.Error(), "phone must be an E.164") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserHandler_UploadAvatar_Success(t *testing.T) {
	stub := &stubUserService{
		uploadAvatarFn: func(ctx context.Context, claim *domain.Claim, file ports.Upload) (*domain.User, error) {
			if file.Filename != "me.jpg" {
				t.Fatalf("file not forwarded: %+v", file)
			}
			return &domain.User{ID: "u-1", ProfilePicURL: "https://blobs/me.jpg"}, nil
		},
	}
	h := NewUserHandler(stub)

	body, contentType := multipartBody(t, "file", "me.jpg", []byte("jpg-bytes"))
	c, rec := newMultipartContext(t, "/api/v1/users/me/avatar", body, contentType)
	withClaim(c)

	if err := h.UploadAvatar(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UploadAvatar_MissingFile(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/users/me/avatar", nil)
	withClaim(c)

	err := h.UploadAvatar(c)
	if err == nil || !strings.Contains(err.Error(), "file is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserHandler_UploadAvatar_DependencyFailurePropagates(t *testing.T) {
	stub := &stubUserService{
		uploadAvatarFn: func(ctx context.Context, claim *domain.Claim, file ports.Upload) (*domain.User, error) {
			return nil, domain.ErrDependencyFailure
		},
	}
	h := NewUserHandler(stub)

	body, contentType := multipartBody(t, "file", "me.jpg", []byte("jpg-bytes"))
	c, _ := newMultipartContext(t, "/api/v1/users/me/avatar", body, contentType)
	withClaim(c)

	if err := h.UploadAvatar(c); !errors.Is(err, domain.ErrDependencyFailure) {
		t.Fatalf("want ErrDependencyFailure, got %v", err)
	}
}
