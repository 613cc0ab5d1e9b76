package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/policy"
	"github.com/clubhub/events-api/internal/core/ports"
)

// BlogService implements blog post use cases.
type BlogService struct {
	posts    ports.BlogRepository
	resolver ports.IdentityResolver
	logger   zerolog.Logger
}

func NewBlogService(posts ports.BlogRepository, resolver ports.IdentityResolver, logger zerolog.Logger) *BlogService {
	return &BlogService{posts: posts, resolver: resolver, logger: logger}
}

func (s *BlogService) Create(ctx context.Context, claim *domain.Claim, in ports.CreatePostInput) (*domain.BlogPost, error) {
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), policy.PostCreate, nil) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	post, err := s.posts.Create(ctx, &domain.BlogPost{
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("post_id", post.ID).Str("author_id", user.ID).Msg("blog post created")
	return post, nil
}

func (s *BlogService) List(ctx context.Context, offset, limit int) ([]*domain.BlogPost, error) {
	return s.posts.List(ctx, offset, clampLimit(limit))
}

func (s *BlogService) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *BlogService) Update(ctx context.Context, claim *domain.Claim, id string, in ports.UpdatePostInput) (*domain.BlogPost, error) {
	post, err := s.loadGuarded(ctx, claim, id, policy.PostUpdate)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	post.UpdatedAt = time.Now().UTC()
	return s.posts.Update(ctx, post)
}

func (s *BlogService) Delete(ctx context.Context, claim *domain.Claim, id string) (*domain.BlogPost, error) {
	post, err := s.loadGuarded(ctx, claim, id, policy.PostDelete)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) loadGuarded(ctx context.Context, claim *domain.Claim, id string, action policy.Action) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), action, post) {
		return nil, domain.ErrForbidden
	}
	return post, nil
}
