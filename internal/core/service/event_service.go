package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/policy"
	"github.com/clubhub/events-api/internal/core/ports"
)

// EventService implements event use cases: public reads, host-gated
// creation, and owner-or-admin mutations.
type EventService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	resolver      ports.IdentityResolver
	blobs         ports.BlobStore
	coverBucket   string
	logger        zerolog.Logger
}

func NewEventService(
	events ports.EventRepository,
	registrations ports.RegistrationRepository,
	resolver ports.IdentityResolver,
	blobs ports.BlobStore,
	coverBucket string,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		events:        events,
		registrations: registrations,
		resolver:      resolver,
		blobs:         blobs,
		coverBucket:   coverBucket,
		logger:        logger,
	}
}

func (s *EventService) Create(ctx context.Context, claim *domain.Claim, in ports.CreateEventInput) (*domain.Event, error) {
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), policy.EventCreate, nil) {
		return nil, domain.ErrForbidden
	}

	price := in.Price
	if !in.IsPaid {
		price = 0
	}
	now := time.Now().UTC()
	event, err := s.events.Create(ctx, &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		DateTime:    in.DateTime,
		Venue:       in.Venue,
		IsPaid:      in.IsPaid,
		Price:       price,
		Capacity:    in.Capacity,
		CreatedByID: user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info().Str("event_id", event.ID).Str("created_by", user.ID).Msg("event created")
	return event, nil
}

func (s *EventService) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	return s.events.List(ctx, offset, clampLimit(limit))
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *EventService) Update(ctx context.Context, claim *domain.Claim, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	event, user, err := s.loadGuarded(ctx, claim, id, policy.EventUpdate)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.DateTime != nil {
		event.DateTime = *in.DateTime
	}
	if in.Venue != nil {
		event.Venue = *in.Venue
	}
	if in.Capacity != nil {
		event.Capacity = *in.Capacity
	}
	event.UpdatedAt = time.Now().UTC()

	updated, err := s.events.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.logger.Info().Str("event_id", id).Str("actor", user.ID).Msg("event updated")
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, claim *domain.Claim, id string) (*domain.Event, error) {
	event, user, err := s.loadGuarded(ctx, claim, id, policy.EventDelete)
	if err != nil {
		return nil, err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}
	s.logger.Info().Str("event_id", id).Str("actor", user.ID).Msg("event deleted")
	return event, nil
}

func (s *EventService) TogglePaid(ctx context.Context, claim *domain.Claim, id string, isPaid bool, price *int) (*domain.Event, error) {
	event, _, err := s.loadGuarded(ctx, claim, id, policy.EventTogglePaid)
	if err != nil {
		return nil, err
	}

	event.IsPaid = isPaid
	if isPaid && price != nil {
		event.Price = *price
	} else if !isPaid {
		event.Price = 0
	}
	event.UpdatedAt = time.Now().UTC()

	return s.events.Update(ctx, event)
}

// UploadCover stores the image in the blob store first; the event row is
// only updated once the upload succeeded.
func (s *EventService) UploadCover(ctx context.Context, claim *domain.Claim, id string, file ports.Upload) (*domain.Event, error) {
	event, _, err := s.loadGuarded(ctx, claim, id, policy.EventCoverUpload)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("events/%s/cover%s", id, extension(file.Filename))
	url, err := s.blobs.Upload(ctx, s.coverBucket, key, file.Data, file.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Str("event_id", id).Msg("cover upload failed")
		return nil, domain.ErrDependencyFailure
	}

	event.CoverImageURL = url
	event.UpdatedAt = time.Now().UTC()
	return s.events.Update(ctx, event)
}

// MarkAttendance sets checkin_start on userID's registration for eventID.
// Ownership is transitive through the event: the policy is consulted with
// the event as the resource, so only its creator or an admin passes.
func (s *EventService) MarkAttendance(ctx context.Context, claim *domain.Claim, eventID, userID string) (*domain.Registration, error) {
	event, _, err := s.loadGuarded(ctx, claim, eventID, policy.AttendanceMark)
	if err != nil {
		return nil, err
	}

	reg, err := s.registrations.GetByEventAndUser(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	if reg.CheckinStart != nil {
		return reg, nil
	}
	now := time.Now().UTC()
	reg.CheckinStart = &now
	reg.UpdatedAt = now
	return s.registrations.Update(ctx, reg)
}

// loadGuarded fetches the event, resolves the actor and consults the policy
// in the order the contract demands: NotFound before Forbidden, both before
// any write.
func (s *EventService) loadGuarded(ctx context.Context, claim *domain.Claim, id string, action policy.Action) (*domain.Event, *domain.User, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, nil, err
	}
	if !policy.Allow(actorFor(user, claim), action, event) {
		return nil, nil, domain.ErrForbidden
	}
	return event, user, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}

// extension returns the dot-prefixed file extension, or a stable fallback
// when the filename has none.
func extension(filename string) string {
	for i := len(filename) - 1; i >= 0 && filename[i] != '/'; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ".bin"
}

// newObjectKey returns a unique blob key preserving the upload's extension.
func newObjectKey(prefix, filename string) string {
	return prefix + uuid.NewString() + extension(filename)
}
