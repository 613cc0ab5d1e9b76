package ports

import (
	"context"
	"time"
)

// BlobStore is the external object store. Implementations return a publicly
// retrievable URL for uploaded objects; any provider error maps to
// domain.ErrDependencyFailure.
type BlobStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	// PresignDownload returns a short-lived URL for a private object, used
	// to hand QR tickets to their owner without making the bucket public.
	PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// TokenBundle is the credential set issued by the identity provider after a
// social-login exchange.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int32  `json:"expires_in"`
}

// IdentityAdmin wraps out-of-band operations against the identity provider:
// provisioning users discovered through social login and driving the
// verification-code flows. Provider failures map to
// domain.ErrDependencyFailure.
type IdentityAdmin interface {
	// EnsureUser creates the provider-side user for email or updates its
	// attributes when it already exists. Idempotent.
	EnsureUser(ctx context.Context, email, name string) error
	// IssueTokens authenticates email against the provider and returns the
	// token bundle handed back to the frontend.
	IssueTokens(ctx context.Context, email string) (*TokenBundle, error)
	// StartVerification sends a verification code to the destination
	// (an email address or E.164 phone number).
	StartVerification(ctx context.Context, destination string) error
	// ConfirmVerification checks the code previously sent to destination.
	ConfirmVerification(ctx context.Context, destination, code string) error
}

// OAuthStateStore persists short-lived state nonces for the social-login
// redirect flow so callbacks can be tied to a login we initiated.
type OAuthStateStore interface {
	Issue(ctx context.Context, provider string, ttl time.Duration) (string, error)
	// Validate consumes the nonce; a second call with the same value fails.
	Validate(ctx context.Context, provider, state string) error
}
