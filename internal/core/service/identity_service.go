package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/policy"
	"github.com/clubhub/events-api/internal/core/ports"
)

// IdentityService maps verified claims to persisted users.
type IdentityService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, logger zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, logger: logger}
}

// Resolve returns the user for claim.Email, creating a member record on
// first sight. Concurrent first-time resolution can race on the insert; the
// email-uniqueness constraint turns the loser's insert into ErrUserExists,
// which we translate into a second lookup.
func (s *IdentityService) Resolve(ctx context.Context, claim *domain.Claim) (*domain.User, error) {
	if claim == nil || claim.Email == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.GetByEmail(ctx, claim.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	name := claim.Username
	if name == "" {
		name = claim.Email
	}
	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:      name,
		Email:     claim.Email,
		Role:      domain.RoleMember,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return s.users.GetByEmail(ctx, claim.Email)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created on first sight")
	return created, nil
}

// actorFor combines the persisted user with the claim's group set into the
// policy's view of the caller.
func actorFor(user *domain.User, claim *domain.Claim) policy.Actor {
	return policy.Actor{ID: user.ID, Role: user.Role, Groups: claim.Groups}
}
