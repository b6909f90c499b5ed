package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"budgeteer-go/internal/config"
	"budgeteer-go/pkg/logger"
)

// Auth resolves the bearer token against the identity provider's user
// endpoint and stores the user in the request context.
type Auth struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	skipAuth bool
	mockUser User
	log      logger.Logger
}

type contextKey int

const userKey contextKey = iota

type userResponse struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Sub          string                 `json:"sub"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	User         struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	} `json:"user"`
}

type User struct {
	ID    string
	Email string
	Name  string
}

func NewAuth(cfg config.AuthConfig, log logger.Logger) *Auth {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Auth{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:    strings.TrimSpace(cfg.MockUserID),
			Email: strings.TrimSpace(cfg.MockUserEmail),
			Name:  strings.TrimSpace(cfg.MockUserName),
		},
		log: log,
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockUser.ID == "" {
				a.log.Error("auth: mock user id not configured")
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), a.mockUser)))
			return
		}

		if a.baseURL == "" || a.apiKey == "" {
			a.log.Error("auth: identity provider not configured")
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.fetchUser(r.Context(), token)
		if err != nil {
			a.log.Debug("auth: token rejected", "err", err)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

type statusError int

func (e statusError) Error() string {
	return "identity provider answered " + http.StatusText(int(e))
}

func (a *Auth) fetchUser(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, statusError(resp.StatusCode)
	}

	var payload userResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, err
	}

	userID := firstNonEmpty(payload.ID, payload.Sub, payload.User.ID, payload.User.Sub)
	if userID == "" {
		return User{}, statusError(http.StatusUnauthorized)
	}

	return User{
		ID:    userID,
		Email: payload.Email,
		Name:  firstNonEmpty(stringFromMap(payload.UserMetadata, "name"), stringFromMap(payload.UserMetadata, "full_name")),
	}, nil
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func stringFromMap(values map[string]interface{}, key string) string {
	value, ok := values[key].(string)
	if !ok {
		return ""
	}
	return value
}
