package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/ports"
)

// UserService implements operations on the caller's own record. Everything
// here is scoped to the resolved user, so no policy consultation is needed
// beyond authentication itself.
type UserService struct {
	users        ports.UserRepository
	resolver     ports.IdentityResolver
	blobs        ports.BlobStore
	avatarBucket string
	logger       zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	resolver ports.IdentityResolver,
	blobs ports.BlobStore,
	avatarBucket string,
	logger zerolog.Logger,
) *UserService {
	return &UserService{users: users, resolver: resolver, blobs: blobs, avatarBucket: avatarBucket, logger: logger}
}

// Me resolves the caller, creating the user on first sight.
func (s *UserService) Me(ctx context.Context, claim *domain.Claim) (*domain.User, error) {
	return s.resolver.Resolve(ctx, claim)
}

func (s *UserService) UpdateMe(ctx context.Context, claim *domain.Claim, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Branch != nil {
		user.Branch = *in.Branch
	}
	if in.Year != nil {
		user.Year = *in.Year
	}
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// UploadAvatar stores the image first; the user row is only updated once the
// upload succeeded.
func (s *UserService) UploadAvatar(ctx context.Context, claim *domain.Claim, file ports.Upload) (*domain.User, error) {
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}

	key := user.ID + "/profile" + extension(file.Filename)
	url, err := s.blobs.Upload(ctx, s.avatarBucket, key, file.Data, file.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("avatar upload failed")
		return nil, domain.ErrDependencyFailure
	}

	user.ProfilePicURL = url
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}
