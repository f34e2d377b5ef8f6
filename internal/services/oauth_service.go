package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"profilehub/internal/models"
)

// OAuthConfig describes the external identity provider. AuthURL, TokenURL,
// and APIBaseURL default to GitHub and only need setting in tests or for a
// compatible self-hosted provider.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
}

// OAuthService delegates authentication to an external identity provider
// via the standard redirect flow. A successful callback yields a verified
// profile which becomes the request's external principal; no local account
// is looked up or created.
type OAuthService struct {
	config     *oauth2.Config
	apiBaseURL string
}

// NewOAuthService creates a new OAuthService requesting the user:email scope.
func NewOAuthService(cfg OAuthConfig) *OAuthService {
	endpoint := github.Endpoint
	if cfg.AuthURL != "" && cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	}
	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = "https://api.github.com"
	}
	return &OAuthService{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"user:email"},
			Endpoint:     endpoint,
		},
		apiBaseURL: apiBaseURL,
	}
}

// AuthCodeURL builds the provider authorize URL for the given CSRF state.
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// providerUser is the subset of the provider's user resource we read.
type providerUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleCallback exchanges the authorization code and fetches the verified
// profile, returning it as an external principal.
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (models.Principal, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return models.Principal{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	client := s.config.Client(ctx, token)
	resp, err := client.Get(s.apiBaseURL + "/user")
	if err != nil {
		return models.Principal{}, fmt.Errorf("failed to fetch provider profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Principal{}, fmt.Errorf("provider profile request returned status %d", resp.StatusCode)
	}

	var profile providerUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return models.Principal{}, fmt.Errorf("failed to decode provider profile: %w", err)
	}

	display := profile.Name
	if display == "" {
		display = profile.Login
	}
	return models.Principal{
		Kind:        models.PrincipalExternal,
		Provider:    "github",
		ExternalID:  strconv.FormatInt(profile.ID, 10),
		DisplayName: display,
		Email:       profile.Email,
	}, nil
}
