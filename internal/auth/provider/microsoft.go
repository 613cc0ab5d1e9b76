package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const graphMeURL = "https://graph.microsoft.com/v1.0/me"

// Microsoft exchanges authorization codes against Azure AD and reads the
// profile from Microsoft Graph. Personal accounts carry the address in mail,
// work accounts often only in userPrincipalName.
type Microsoft struct {
	oauth *oauth2.Config
}

func NewMicrosoft(clientID, clientSecret, tenant, redirectURL string) *Microsoft {
	if tenant == "" {
		tenant = "common"
	}
	return &Microsoft{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     microsoft.AzureADEndpoint(tenant),
			Scopes:       []string{"openid", "email", "profile", "User.Read"},
		},
	}
}

func (m *Microsoft) Name() string { return "microsoft" }

func (m *Microsoft) AuthCodeURL(state string) string {
	return m.oauth.AuthCodeURL(state)
}

func (m *Microsoft) Exchange(ctx context.Context, code string) (*Identity, error) {
	tok, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("microsoft exchange: %w", err)
	}

	resp, err := m.oauth.Client(ctx, tok).Get(graphMeURL)
	if err != nil {
		return nil, fmt.Errorf("microsoft graph: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("microsoft graph: status %d", resp.StatusCode)
	}

	var profile struct {
		ID                string `json:"id"`
		DisplayName       string `json:"displayName"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("microsoft graph: %w", err)
	}

	email := profile.Mail
	if email == "" {
		email = profile.UserPrincipalName
	}
	if email == "" {
		return nil, fmt.Errorf("microsoft graph: profile has no email")
	}

	return &Identity{
		Provider:      m.Name(),
		Subject:       profile.ID,
		Email:         email,
		Name:          profile.DisplayName,
		EmailVerified: true,
	}, nil
}
