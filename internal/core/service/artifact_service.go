package service

import (
	"context"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/ports"
)

const qrImageSize = 512

// ArtifactService generates the QR ticket for a committed registration and
// persists its URL. It runs on the background workers only; errors returned
// here are logged by the dispatcher and never reach the registering caller.
type ArtifactService struct {
	registrations ports.RegistrationRepository
	blobs         ports.BlobStore
	bucket        string
	logger        zerolog.Logger
}

func NewArtifactService(
	registrations ports.RegistrationRepository,
	blobs ports.BlobStore,
	bucket string,
	logger zerolog.Logger,
) *ArtifactService {
	return &ArtifactService{registrations: registrations, blobs: blobs, bucket: bucket, logger: logger}
}

// Process encodes the registration reference as a QR PNG, uploads it and
// stores the resulting URL on the registration row.
func (s *ArtifactService) Process(ctx context.Context, job ports.ArtifactJob) error {
	payload, err := json.Marshal(map[string]string{
		"registration_id": job.RegistrationID,
		"event_id":        job.EventID,
		"user_id":         job.UserID,
	})
	if err != nil {
		return fmt.Errorf("artifact payload: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Low, qrImageSize)
	if err != nil {
		return fmt.Errorf("artifact encode: %w", err)
	}

	key := fmt.Sprintf("registrations/%s.png", job.RegistrationID)
	url, err := s.blobs.Upload(ctx, s.bucket, key, png, "image/png")
	if err != nil {
		return fmt.Errorf("artifact upload: %w", err)
	}

	if err := s.registrations.SetQRCodeURL(ctx, job.RegistrationID, url); err != nil {
		return fmt.Errorf("artifact persist: %w", err)
	}

	s.logger.Debug().Str("registration_id", job.RegistrationID).Msg("qr ticket stored")
	return nil
}
