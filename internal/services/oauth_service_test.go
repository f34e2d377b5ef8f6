package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilehub/internal/models"
	"profilehub/internal/services"
)

// fakeProvider stands in for the external identity provider: a token
// endpoint and a user resource.
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.FormValue("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "bad_verification_code"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "provider-access-token",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Authorization"), "provider-access-token") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    12345,
			"login": "octo",
			"name":  "Octo Cat",
			"email": "octo@example.com",
		})
	})
	return httptest.NewServer(mux)
}

func newTestOAuthService(provider *httptest.Server) *services.OAuthService {
	return services.NewOAuthService(services.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:13000/auth/github/callback",
		AuthURL:      provider.URL + "/authorize",
		TokenURL:     provider.URL + "/token",
		APIBaseURL:   provider.URL,
	})
}

func TestOAuthService_AuthCodeURL(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()
	svc := newTestOAuthService(provider)

	raw := svc.AuthCodeURL("state-123")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/authorize", parsed.Path)
	assert.Equal(t, "state-123", parsed.Query().Get("state"))
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "user:email", parsed.Query().Get("scope"))
}

func TestOAuthService_HandleCallback(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()
	svc := newTestOAuthService(provider)

	principal, err := svc.HandleCallback(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, models.PrincipalExternal, principal.Kind)
	assert.Equal(t, "github", principal.Provider)
	assert.Equal(t, "12345", principal.ExternalID)
	assert.Equal(t, "Octo Cat", principal.DisplayName)
	assert.Equal(t, "octo@example.com", principal.Email)
	assert.Zero(t, principal.UserID, "an external principal carries no local account")
}

func TestOAuthService_HandleCallbackBadCode(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()
	svc := newTestOAuthService(provider)

	_, err := svc.HandleCallback(context.Background(), "bad-code")
	assert.Error(t, err)
}
