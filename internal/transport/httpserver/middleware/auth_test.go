package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgeteer-go/internal/config"
	"budgeteer-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityProvider(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "user-42",
			"email":         "ana@example.com",
			"user_metadata": map[string]any{"full_name": "Ana"},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": user.ID, "name": user.Name})
	})
}

func TestAuthAcceptsValidToken(t *testing.T) {
	provider := newIdentityProvider(t)
	auth := NewAuth(config.AuthConfig{URL: provider.URL + "/", APIKey: "test-key", Timeout: time.Second}, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/stats/balance", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	auth.Middleware(echoUser()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-42", body["id"])
	assert.Equal(t, "Ana", body["name"])
}

func TestAuthRejectsMissingOrBadToken(t *testing.T) {
	provider := newIdentityProvider(t)
	auth := NewAuth(config.AuthConfig{URL: provider.URL, APIKey: "test-key"}, logger.Nop())

	for _, header := range []string{"", "Bearer bad-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/stats/balance", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		auth.Middleware(echoUser()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Contains(t, rec.Body.String(), "invalid_token")
	}
}

func TestAuthSkipInjectsMockUser(t *testing.T) {
	auth := NewAuth(config.AuthConfig{SkipAuth: true, MockUserID: " dev-user "}, logger.Nop())

	rec := httptest.NewRecorder()
	auth.Middleware(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dev-user")
}

func TestAuthNotConfigured(t *testing.T) {
	auth := NewAuth(config.AuthConfig{}, logger.Nop())

	rec := httptest.NewRecorder()
	auth.Middleware(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_not_configured")
}
