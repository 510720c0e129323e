package identity

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"mailmerge/internal/domain"
)

// scopes cover sending mail as the user and reading their profile.
var scopes = []string{
	"https://graph.microsoft.com/Mail.Send",
	"https://graph.microsoft.com/User.Read",
}

// AzureProvider implements the authorization code flow against Azure AD.
type AzureProvider struct {
	config *oauth2.Config
}

// NewAzureProvider builds a provider for the given app registration. tenantID
// may be "common" for multi-tenant apps.
func NewAzureProvider(clientID, clientSecret, tenantID, redirectURL string) *AzureProvider {
	return &AzureProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     microsoft.AzureADEndpoint(tenantID),
			RedirectURL:  redirectURL,
			Scopes:       scopes,
		},
	}
}

func (p *AzureProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *AzureProvider) Exchange(ctx context.Context, code string) (*domain.Token, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return &domain.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

func (p *AzureProvider) Refresh(ctx context.Context, refreshToken string) (*domain.Token, error) {
	source := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh access token: %w", err)
	}
	return &domain.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}
