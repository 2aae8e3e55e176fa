package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"community_hub/internal/common"
	"community_hub/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedServer(tokens *security.Tokens) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(tokens.Auth()))
	r.Group(func(protected chi.Router) {
		protected.Use(Authenticator)
		protected.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := GetUserIDFromContext(r.Context())
			role, _ := GetUserRoleFromContext(r.Context())
			w.Write([]byte(userID + ":" + role))
		})

		protected.Group(func(admin chi.Router) {
			admin.Use(AdminOnly)
			admin.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("admin ok"))
			})
		})
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuthenticator_ValidToken(t *testing.T) {
	tokens := security.NewTokens([]byte("acc"), []byte("ref"), 15*time.Minute, time.Hour)
	srv := newGuardedServer(tokens)

	tok, err := tokens.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	w := doRequest(t, srv, "/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1:user", w.Body.String())
}

func TestAuthenticator_UniformRejection(t *testing.T) {
	tokens := security.NewTokens([]byte("acc"), []byte("ref"), 15*time.Minute, time.Hour)
	srv := newGuardedServer(tokens)

	expired := security.NewTokens([]byte("acc"), []byte("ref"), -time.Minute, time.Hour)
	expiredTok, err := expired.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	otherKey := security.NewTokens([]byte("other"), []byte("ref"), 15*time.Minute, time.Hour)
	forgedTok, err := otherKey.GenerateAccessToken("user-1", "admin")
	require.NoError(t, err)

	// Refresh tokens must never pass the access-token guard.
	refreshTok, _, err := tokens.GenerateRefreshToken("user-1", "user")
	require.NoError(t, err)

	cases := map[string]string{
		"missing":       "",
		"garbage":       "not.a.token",
		"expired":       expiredTok,
		"wrong secret":  forgedTok,
		"refresh token": refreshTok,
	}

	var bodies []string
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			w := doRequest(t, srv, "/me", tok)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			bodies = append(bodies, w.Body.String())
		})
	}

	// Every failure mode produces the same response body: the shape alone
	// must not reveal why the token was rejected.
	for _, body := range bodies {
		assert.JSONEq(t, `{"error":"`+common.ErrUnauthorized.Error()+`"}`, body)
	}
}

func TestAdminOnly(t *testing.T) {
	tokens := security.NewTokens([]byte("acc"), []byte("ref"), 15*time.Minute, time.Hour)
	srv := newGuardedServer(tokens)

	userTok, err := tokens.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)
	adminTok, err := tokens.GenerateAccessToken("admin-1", "admin")
	require.NoError(t, err)

	w := doRequest(t, srv, "/admin", userTok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, srv, "/admin", adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
}
