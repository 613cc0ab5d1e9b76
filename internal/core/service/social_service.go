package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/auth/provider"
	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/ports"
)

const oauthStateTTL = 10 * time.Minute

// SocialService drives OAuth logins end to end: it issues the state nonce,
// redeems the callback against the configured provider, resolves the local
// user and mirrors it into the identity provider before issuing tokens.
type SocialService struct {
	providers map[string]provider.Provider
	states    ports.OAuthStateStore
	resolver  ports.IdentityResolver
	idp       ports.IdentityAdmin
	logger    zerolog.Logger
}

func NewSocialService(
	states ports.OAuthStateStore,
	resolver ports.IdentityResolver,
	idp ports.IdentityAdmin,
	logger zerolog.Logger,
	providers ...provider.Provider,
) *SocialService {
	byName := make(map[string]provider.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &SocialService{providers: byName, states: states, resolver: resolver, idp: idp, logger: logger}
}

func (s *SocialService) LoginURL(ctx context.Context, name string) (string, error) {
	p, ok := s.providers[name]
	if !ok {
		return "", domain.ErrUnknownProvider
	}
	state, err := s.states.Issue(ctx, name, oauthStateTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("provider", name).Msg("oauth state issue failed")
		return "", domain.ErrDependencyFailure
	}
	return p.AuthCodeURL(state), nil
}

func (s *SocialService) Callback(ctx context.Context, name, code, state string) (*ports.TokenBundle, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, domain.ErrUnknownProvider
	}
	if err := s.states.Validate(ctx, name, state); err != nil {
		return nil, err
	}

	id, err := p.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", name).Msg("oauth exchange rejected")
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.resolver.Resolve(ctx, &domain.Claim{
		Subject:  id.Subject,
		Email:    id.Email,
		Username: id.Name,
	})
	if err != nil {
		return nil, err
	}

	if err := s.idp.EnsureUser(ctx, user.Email, user.Name); err != nil {
		return nil, err
	}
	tokens, err := s.idp.IssueTokens(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("provider", name).Str("user_id", user.ID).Msg("social login completed")
	return tokens, nil
}
