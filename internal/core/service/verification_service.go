package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clubhub/events-api/internal/core/ports"
)

// VerificationService relays verification-code flows to the identity
// provider. The provider owns code generation, delivery and expiry; this
// service only picks the destination attribute per variant.
type VerificationService struct {
	idp    ports.IdentityAdmin
	logger zerolog.Logger
}

func NewVerificationService(idp ports.IdentityAdmin, logger zerolog.Logger) *VerificationService {
	return &VerificationService{idp: idp, logger: logger}
}

func (s *VerificationService) SendEmailCode(ctx context.Context, email string) error {
	if err := s.idp.StartVerification(ctx, email); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("verification code sent")
	return nil
}

func (s *VerificationService) SendPhoneCode(ctx context.Context, phone string) error {
	if err := s.idp.StartVerification(ctx, phone); err != nil {
		return err
	}
	s.logger.Info().Str("phone", phone).Msg("verification code sent")
	return nil
}

func (s *VerificationService) VerifyEmailCode(ctx context.Context, email, code string) error {
	return s.idp.ConfirmVerification(ctx, email, code)
}

func (s *VerificationService) VerifyPhoneCode(ctx context.Context, phone, code string) error {
	return s.idp.ConfirmVerification(ctx, phone, code)
}
