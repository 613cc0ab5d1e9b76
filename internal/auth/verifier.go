// Package auth verifies bearer credentials issued by the identity provider
// and turns them into domain claims.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubhub/events-api/internal/core/domain"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Email    string   `json:"email"`
	Username string   `json:"cognito:username"`
	Groups   []string `json:"cognito:groups"`
}

// Verifier checks JWT signature, issuer, audience and lifetime against the
// provider's published keys. Any failure collapses to ErrUnauthenticated;
// the parse detail is never surfaced to callers.
type Verifier struct {
	keys     jwt.Keyfunc
	issuer   string
	audience string
	now      func() time.Time
}

// NewVerifier builds a verifier over keys. audience may be empty for tokens
// that carry no aud claim (provider access tokens).
func NewVerifier(keys jwt.Keyfunc, issuer, audience string) *Verifier {
	return &Verifier{keys: keys, issuer: issuer, audience: audience, now: time.Now}
}

// WithClock overrides the validation clock. Tests only.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

func (v *Verifier) Verify(tokenString string) (*domain.Claim, error) {
	claims := &tokenClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, v.keys, opts...)
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Claim{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Username: claims.Username,
		Groups:   claims.Groups,
	}, nil
}
