package provider

import "context"

// Identity is the profile a provider hands back after a successful code
// exchange. Email is the join key into the local user store.
type Identity struct {
	Provider      string
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// Provider is one configured OAuth login backend.
type Provider interface {
	Name() string
	// AuthCodeURL builds the provider's authorization URL carrying state.
	AuthCodeURL(state string) string
	// Exchange redeems the authorization code and returns the verified
	// identity behind it.
	Exchange(ctx context.Context, code string) (*Identity, error)
}
