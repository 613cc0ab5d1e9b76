package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/policy"
	"github.com/clubhub/events-api/internal/core/ports"
)

// RegistrationService implements registration use cases. The (event, user)
// uniqueness invariant is enforced twice: an existence check here as a fast
// path, and the store's unique index as the authoritative backstop under
// concurrency.
type RegistrationService struct {
	registrations ports.RegistrationRepository
	events        ports.EventRepository
	resolver      ports.IdentityResolver
	artifacts     ports.ArtifactDispatcher
	blobs         ports.BlobStore
	bucket        string
	logger        zerolog.Logger
}

func NewRegistrationService(
	registrations ports.RegistrationRepository,
	events ports.EventRepository,
	resolver ports.IdentityResolver,
	artifacts ports.ArtifactDispatcher,
	blobs ports.BlobStore,
	bucket string,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		resolver:      resolver,
		artifacts:     artifacts,
		blobs:         blobs,
		bucket:        bucket,
		logger:        logger,
	}
}

// ticketURLTTL bounds how long a presigned ticket link stays valid.
const ticketURLTTL = 15 * time.Minute

// Register creates a registration for the caller. The QR ticket is generated
// by a background worker after the row is committed; its outcome never
// affects this call.
func (s *RegistrationService) Register(ctx context.Context, claim *domain.Claim, eventID string) (*domain.Registration, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}

	if _, err := s.registrations.GetByEventAndUser(ctx, event.ID, user.ID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrRegistrationNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	reg, err := s.registrations.Create(ctx, &domain.Registration{
		EventID:       event.ID,
		UserID:        user.ID,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		// The unique index wins races the existence check missed.
		return nil, err
	}

	s.artifacts.Enqueue(ports.ArtifactJob{
		RegistrationID: reg.ID,
		EventID:        event.ID,
		UserID:         user.ID,
	})

	s.logger.Info().Str("registration_id", reg.ID).Str("event_id", event.ID).Str("user_id", user.ID).Msg("registration created")
	return reg, nil
}

func (s *RegistrationService) ListMine(ctx context.Context, claim *domain.Claim, offset, limit int) ([]*domain.Registration, error) {
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	return s.registrations.ListByUser(ctx, user.ID, offset, clampLimit(limit))
}

// Get returns a registration to its owner, a host, or an admin.
func (s *RegistrationService) Get(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), policy.RegistrationView, (*regOwner)(reg)) {
		return nil, domain.ErrForbidden
	}
	return reg, nil
}

// TicketURL returns a short-lived download link for the caller's QR ticket.
// The ticket bucket is private, so the stored object URL is never handed out
// directly. Access follows the same rule as Get.
func (s *RegistrationService) TicketURL(ctx context.Context, claim *domain.Claim, id string) (string, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return "", err
	}
	if !policy.Allow(actorFor(user, claim), policy.RegistrationView, (*regOwner)(reg)) {
		return "", domain.ErrForbidden
	}
	if reg.QRCodeURL == "" {
		return "", domain.ErrTicketNotReady
	}

	key := fmt.Sprintf("registrations/%s.png", reg.ID)
	url, err := s.blobs.PresignDownload(ctx, s.bucket, key, ticketURLTTL)
	if err != nil {
		return "", err
	}
	return url, nil
}

func (s *RegistrationService) ListByEvent(ctx context.Context, claim *domain.Claim, eventID string, offset, limit int) ([]*domain.Registration, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), policy.RegistrationListByEvent, nil) {
		return nil, domain.ErrForbidden
	}
	return s.registrations.ListByEvent(ctx, eventID, offset, clampLimit(limit))
}

func (s *RegistrationService) UpdatePayment(ctx context.Context, claim *domain.Claim, id string, status domain.PaymentStatus) (*domain.Registration, error) {
	if !domain.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentStatus, status)
	}
	reg, err := s.loadEventGuarded(ctx, claim, id, policy.PaymentUpdate)
	if err != nil {
		return nil, err
	}
	reg.PaymentStatus = status
	reg.UpdatedAt = time.Now().UTC()
	return s.registrations.Update(ctx, reg)
}

func (s *RegistrationService) MarkCheckinStart(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error) {
	reg, err := s.loadEventGuarded(ctx, claim, id, policy.CheckinMark)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	reg.CheckinStart = &now
	reg.UpdatedAt = now
	return s.registrations.Update(ctx, reg)
}

func (s *RegistrationService) MarkCheckinEnd(ctx context.Context, claim *domain.Claim, id string) (*domain.Registration, error) {
	reg, err := s.loadEventGuarded(ctx, claim, id, policy.CheckinMark)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	reg.CheckinEnd = &now
	reg.UpdatedAt = now
	return s.registrations.Update(ctx, reg)
}

// loadEventGuarded loads the registration plus its event and consults the
// policy with the event as the resource: attendance and payment mutations
// belong to the event's creator (or an admin), never to the registrant.
func (s *RegistrationService) loadEventGuarded(ctx context.Context, claim *domain.Claim, id string, action policy.Action) (*domain.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), action, event) {
		return nil, domain.ErrForbidden
	}
	return reg, nil
}

// regOwner adapts a registration's user reference to the policy's Resource
// view for read access checks.
type regOwner domain.Registration

func (r *regOwner) OwnerID() string { return r.UserID }
