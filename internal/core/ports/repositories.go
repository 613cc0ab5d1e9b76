package ports

import (
	"context"

	"github.com/clubhub/events-api/internal/core/domain"
)

// UserRepository persists users. The store enforces email uniqueness; Create
// returns domain.ErrUserExists when the constraint fires so callers can
// translate a duplicate-insert race into a lookup.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
}

// EventRepository persists events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationRepository persists registrations. The store enforces the
// (event_id, user_id) uniqueness invariant; Create returns
// domain.ErrAlreadyRegistered when it fires. The application-level existence
// check in the service is an optimization, not the guarantee.
type RegistrationRepository interface {
	Create(ctx context.Context, r *domain.Registration) (*domain.Registration, error)
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string, offset, limit int) ([]*domain.Registration, error)
	Update(ctx context.Context, r *domain.Registration) (*domain.Registration, error)
	// SetQRCodeURL is called from the background artifact worker and must not
	// touch any other field.
	SetQRCodeURL(ctx context.Context, id, url string) error
}

// BlogRepository persists blog posts.
type BlogRepository interface {
	Create(ctx context.Context, p *domain.BlogPost) (*domain.BlogPost, error)
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	List(ctx context.Context, offset, limit int) ([]*domain.BlogPost, error)
	Update(ctx context.Context, p *domain.BlogPost) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// GalleryRepository persists gallery items.
type GalleryRepository interface {
	Create(ctx context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error)
	GetByID(ctx context.Context, id string) (*domain.GalleryItem, error)
	List(ctx context.Context, offset, limit int) ([]*domain.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}
