package aws

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/domain"
)

// BlobStore implements ports.BlobStore over S3. Provider errors are logged
// here and collapse to domain.ErrDependencyFailure.
type BlobStore struct {
	client   *s3.Client
	presign  *s3.PresignClient
	region   string
	endpoint string
	logger   zerolog.Logger
}

// NewBlobStore builds the store. A non-empty endpoint switches the client to
// path-style addressing for localstack/minio setups.
func NewBlobStore(cfg aws.Config, endpoint string, logger zerolog.Logger) *BlobStore {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &BlobStore{
		client:   client,
		presign:  s3.NewPresignClient(client),
		region:   cfg.Region,
		endpoint: endpoint,
		logger:   logger,
	}
}

func (b *BlobStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		b.logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("s3 put failed")
		return "", domain.ErrDependencyFailure
	}
	return b.objectURL(bucket, key), nil
}

func (b *BlobStore) PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		b.logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("s3 presign get failed")
		return "", domain.ErrDependencyFailure
	}
	return req.URL, nil
}

func (b *BlobStore) Delete(ctx context.Context, bucket, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		b.logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("s3 delete failed")
		return domain.ErrDependencyFailure
	}
	return nil
}

func (b *BlobStore) objectURL(bucket, key string) string {
	if b.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(b.endpoint, "/"), bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, b.region, key)
}
