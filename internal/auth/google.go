package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sharklink/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleAuthenticator drives the OAuth code flow against Google and
// fetches the account profile for the session
type GoogleAuthenticator struct {
	oauth *oauth2.Config
}

// NewGoogleAuthenticator creates a new authenticator from config
func NewGoogleAuthenticator(cfg *config.GoogleConfig) *GoogleAuthenticator {
	return &GoogleAuthenticator{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/drive.readonly",
			},
		},
	}
}

// AuthURL returns the provider consent URL for the given state token
func (a *GoogleAuthenticator) AuthURL(state string) string {
	return a.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for an identity with a live access token
func (a *GoogleAuthenticator) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	client := a.oauth.Client(ctx, token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned status %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("user info missing email")
	}

	return &Identity{
		ID:          info.ID,
		Email:       info.Email,
		Name:        info.Name,
		Picture:     info.Picture,
		AccessToken: token.AccessToken,
	}, nil
}
