// Package auth implements the portal's mock login flows. The OAuth flows
// build real provider configurations and walk the auth-code shape, but the
// token itself is minted locally: nothing here performs real
// authentication.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"filedesk/internal/model"
)

// microsoftEndpoint is the common-tenant Microsoft identity endpoint.
var microsoftEndpoint = oauth2.Endpoint{
	AuthURL:  "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
	TokenURL: "https://login.microsoftonline.com/common/oauth2/v2.0/token",
}

// Provider is one of the mock OAuth identity providers.
type Provider struct {
	Name   model.LoginMethod
	Config *oauth2.Config
}

// GoogleProvider returns the Google mock provider.
func GoogleProvider(clientID, clientSecret string) Provider {
	return Provider{
		Name: model.LoginGoogle,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  "http://localhost:8080/callback",
			Scopes:       []string{"openid", "email", "profile"},
		},
	}
}

// OutlookProvider returns the Microsoft mock provider.
func OutlookProvider(clientID, clientSecret string) Provider {
	return Provider{
		Name: model.LoginOutlook,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     microsoftEndpoint,
			RedirectURL:  "http://localhost:8080/callback",
			Scopes:       []string{"openid", "email", "profile"},
		},
	}
}

// AuthURL returns the provider's auth-code URL with offline access, for
// display. The mock flow never visits it.
func (p Provider) AuthURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// MockExchange stands in for the code-for-token exchange: it mints a local
// token with a one-hour expiry.
func (p Provider) MockExchange(now time.Time) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  fmt.Sprintf("mock-%s-%d", p.Name, now.UnixMilli()),
		TokenType:    "Bearer",
		RefreshToken: fmt.Sprintf("mock-refresh-%s", p.Name),
		Expiry:       now.Add(time.Hour),
	}
}

// User returns the fixed identity the provider logs in as.
func (p Provider) User() model.User {
	return model.OAuthUser{Provider: p.Name}
}

// SaveToken saves an OAuth token to file.
func SaveToken(tokenFile string, token *oauth2.Token) error {
	if dir := filepath.Dir(tokenFile); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(tokenFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

// LoadToken loads a token from file.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return token, nil
}
