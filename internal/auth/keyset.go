package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// CognitoIssuer is the issuer URL of a user pool, also the base of its JWKS
// endpoint.
func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

// NewCognitoKeyfunc fetches the pool's JWKS and keeps it refreshed in the
// background until ctx is cancelled. Unknown key IDs trigger an immediate
// refresh so pool key rotation does not drop requests.
func NewCognitoKeyfunc(ctx context.Context, region, userPoolID string, logger zerolog.Logger) (jwt.Keyfunc, error) {
	jwksURL := CognitoIssuer(region, userPoolID) + "/.well-known/jwks.json"
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error().Err(err).Str("jwks_url", jwksURL).Msg("jwks refresh failed")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("jwks fetch: %w", err)
	}
	return jwks.Keyfunc, nil
}
