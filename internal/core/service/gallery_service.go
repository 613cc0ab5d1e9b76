package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/policy"
	"github.com/clubhub/events-api/internal/core/ports"
)

// GalleryService implements gallery use cases. Image bytes go to the blob
// store; the row is only written once the upload succeeded.
type GalleryService struct {
	items    ports.GalleryRepository
	resolver ports.IdentityResolver
	blobs    ports.BlobStore
	bucket   string
	logger   zerolog.Logger
}

func NewGalleryService(
	items ports.GalleryRepository,
	resolver ports.IdentityResolver,
	blobs ports.BlobStore,
	bucket string,
	logger zerolog.Logger,
) *GalleryService {
	return &GalleryService{items: items, resolver: resolver, blobs: blobs, bucket: bucket, logger: logger}
}

func (s *GalleryService) UploadImage(ctx context.Context, claim *domain.Claim, file ports.Upload) (*domain.GalleryItem, error) {
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), policy.ImageCreate, nil) {
		return nil, domain.ErrForbidden
	}

	key := newObjectKey("gallery/"+user.ID+"/", file.Filename)
	url, err := s.blobs.Upload(ctx, s.bucket, key, file.Data, file.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("gallery upload failed")
		return nil, domain.ErrDependencyFailure
	}

	now := time.Now().UTC()
	item, err := s.items.Create(ctx, &domain.GalleryItem{
		ImageURL:     url,
		UploadedByID: user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("gallery_id", item.ID).Str("uploaded_by", user.ID).Msg("gallery image uploaded")
	return item, nil
}

func (s *GalleryService) List(ctx context.Context, offset, limit int) ([]*domain.GalleryItem, error) {
	return s.items.List(ctx, offset, clampLimit(limit))
}

func (s *GalleryService) Get(ctx context.Context, id string) (*domain.GalleryItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *GalleryService) Delete(ctx context.Context, claim *domain.Claim, id string) (*domain.GalleryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actorFor(user, claim), policy.ImageDelete, item) {
		return nil, domain.ErrForbidden
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return nil, err
	}

	// Blob cleanup is best effort. The row is gone either way; an orphaned
	// object only costs storage.
	if key := objectKeyFromURL(s.bucket, item.ImageURL); key != "" {
		if err := s.blobs.Delete(ctx, s.bucket, key); err != nil {
			s.logger.Warn().Err(err).Str("gallery_id", item.ID).Str("key", key).Msg("gallery blob cleanup failed")
		}
	}
	return item, nil
}

// objectKeyFromURL recovers the object key from a stored object URL. It
// handles both virtual-hosted URLs (key is the whole path) and path-style
// URLs where the bucket leads the path.
func objectKeyFromURL(bucket, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	key := strings.TrimPrefix(u.Path, "/")
	key = strings.TrimPrefix(key, bucket+"/")
	return key
}
