package ports

import (
	"context"
	"time"

	"github.com/clubhub/events-api/internal/core/domain"
)

// IdentityResolver maps a verified claim to a persisted user, creating a
// member record on first sight. Resolution is idempotent: a duplicate-insert
// race is translated to a lookup, never surfaced.
type IdentityResolver interface {
	Resolve(ctx context.Context, claim *domain.Claim) (*domain.User, error)
}

// Upload carries file bytes from the transport layer to a service.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateEventInput carries all data needed to create an event.
type CreateEventInput struct {
	Title       string
	Description string
	DateTime    time.Time
	Venue       string
	IsPaid      bool
	Price       int
	Capacity    int
}

// UpdateEventInput is a partial update; nil fields are left untouched.
type UpdateEventInput struct {
	Title       *string
	Description *string
	DateTime    *time.Time
	Venue       *string
	Capacity    *int
}

// EventService defines use-case operations for events.
type EventService interface {
	Create(ctx context.Context, claim *domain.Claim, in CreateEventInput) (*domain.Event, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, claim *domain.Claim, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, claim *domain.Claim, id string) (*domain.Event, error)
	TogglePaid(ctx context.Context, claim *domain.Claim, id string, isPaid bool, price *int) (*domain.Event, error)
	UploadCover(ctx context.Context, claim *domain.Claim, id string, file Upload) (*domain.Event, error)
	// MarkAttendance sets checkin_start on userID's registration for the
	// event. Permitted for the event's creator or an admin only.
	MarkAttendance(ctx context.Context, claim *domain.Claim, eventID, userID string) (*domain.Registration, error)
}

// RegistrationService defines use-case operations for registrations.
type RegistrationService interface {
	Register(ctx context.Context, claim *domain.Claim, eventID string) (*domain.Registration, error)
	ListMine(ctx context.Context, claim *domain.Claim, offset, limit int) ([]*domain.Registration, error)
	Get(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error)
	// TicketURL returns a short-lived download link for the QR ticket of a
	// registration the caller may view.
	TicketURL(ctx context.Context, claim *domain.Claim, id string) (string, error)
	ListByEvent(ctx context.Context, claim *domain.Claim, eventID string, offset, limit int) ([]*domain.Registration, error)
	UpdatePayment(ctx context.Context, claim *domain.Claim, id string, status domain.PaymentStatus) (*domain.Registration, error)
	MarkCheckinStart(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error)
	MarkCheckinEnd(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error)
}

// CreatePostInput carries the fields of a new blog post.
type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput is a partial update; nil fields are left untouched.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// BlogService defines use-case operations for blog posts.
type BlogService interface {
	Create(ctx context.Context, claim *domain.Claim, in CreatePostInput) (*domain.BlogPost, error)
	List(ctx context.Context, offset, limit int) ([]*domain.BlogPost, error)
	Get(ctx context.Context, id string) (*domain.BlogPost, error)
	Update(ctx context.Context, claim *domain.Claim, id string, in UpdatePostInput) (*domain.BlogPost, error)
	Delete(ctx context.Context, claim *domain.Claim, id string) (*domain.BlogPost, error)
}

// GalleryService defines use-case operations for gallery images.
type GalleryService interface {
	UploadImage(ctx context.Context, claim *domain.Claim, file Upload) (*domain.GalleryItem, error)
	List(ctx context.Context, offset, limit int) ([]*domain.GalleryItem, error)
	Get(ctx context.Context, id string) (*domain.GalleryItem, error)
	Delete(ctx context.Context, claim *domain.Claim, id string) (*domain.GalleryItem, error)
}

// UpdateUserInput is a partial self-update; nil fields are left untouched.
type UpdateUserInput struct {
	Name   *string
	Phone  *string
	Branch *string
	Year   *string
}

// UserService defines operations on the caller's own user record.
type UserService interface {
	Me(ctx context.Context, claim *domain.Claim) (*domain.User, error)
	UpdateMe(ctx context.Context, claim *domain.Claim, in UpdateUserInput) (*domain.User, error)
	UploadAvatar(ctx context.Context, claim *domain.Claim, file Upload) (*domain.User, error)
}

// SocialService drives the OAuth code-exchange flows against the external
// providers and hands back identity-provider tokens.
type SocialService interface {
	// LoginURL returns the provider's authorization URL with a fresh state
	// nonce bound to this flow.
	LoginURL(ctx context.Context, provider string) (string, error)
	// Callback validates state, exchanges the code, resolves the local user
	// and returns the token bundle issued by the identity provider.
	Callback(ctx context.Context, provider, code, state string) (*TokenBundle, error)
}

// VerificationService drives the email/phone verification-code flows. One
// method per variant: the request shape is fixed by the method, not
// inspected from a generic body.
type VerificationService interface {
	SendEmailCode(ctx context.Context, email string) error
	SendPhoneCode(ctx context.Context, phone string) error
	VerifyEmailCode(ctx context.Context, email, code string) error
	VerifyPhoneCode(ctx context.Context, phone, code string) error
}
