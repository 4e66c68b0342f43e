package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateloan/lms-auth/pkg/identity"
	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/token"
)

var testSecret = []byte("test-secret")

func issueTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	issuer := token.NewIssuer(testSecret, ttl)
	user := &model.User{ID: 42, Username: "admin"}
	signed, err := issuer.Issue(user, []string{"ROLE_ADMIN", "USER:READ"})
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		id, ok := identity.Get(r.Context())
		require.True(t, ok)
		assert.Equal(t, uint(42), id.UserID)
		assert.Equal(t, "admin", id.Username)
		assert.True(t, id.HasRole("ADMIN"))
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareValidToken(t *testing.T) {
	auth := NewBearerAuthenticator(token.NewIssuer(testSecret, time.Hour))

	called := false
	handler := auth.Middleware(protectedHandler(t, &called))

	r := httptest.NewRequest("GET", "/users", nil)
	r.Header.Set("Authorization", "Bearer "+issueTestToken(t, time.Hour))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareMissingHeader(t *testing.T) {
	auth := NewBearerAuthenticator(token.NewIssuer(testSecret, time.Hour))

	called := false
	handler := auth.Middleware(protectedHandler(t, &called))

	r := httptest.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization missing", w.Body.String())
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	auth := NewBearerAuthenticator(token.NewIssuer(testSecret, time.Hour))

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		called := false
		handler := auth.Middleware(protectedHandler(t, &called))

		r := httptest.NewRequest("GET", "/users", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.False(t, called, "header %q should be rejected", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestMiddlewareBadSignature(t *testing.T) {
	auth := NewBearerAuthenticator(token.NewIssuer([]byte("other-secret"), time.Hour))

	called := false
	handler := auth.Middleware(protectedHandler(t, &called))

	r := httptest.NewRequest("GET", "/users", nil)
	r.Header.Set("Authorization", "Bearer "+issueTestToken(t, time.Hour))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", w.Body.String())
}

func TestMiddlewareExpiredToken(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour)
	auth := NewBearerAuthenticator(issuer)

	// Issue directly with a negative TTL to craft an expired token.
	expired := token.NewIssuer(testSecret, -time.Minute)
	signed, err := expired.Issue(&model.User{ID: 1, Username: "admin"}, nil)
	require.NoError(t, err)

	called := false
	handler := auth.Middleware(protectedHandler(t, &called))

	r := httptest.NewRequest("GET", "/users", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", w.Body.String())
}

type revokeAll struct{}

func (revokeAll) IsRevoked(*token.Claims) bool { return true }

func TestMiddlewareRevokedToken(t *testing.T) {
	auth := NewBearerAuthenticator(token.NewIssuer(testSecret, time.Hour))
	auth.RevocationChecker = revokeAll{}

	called := false
	handler := auth.Middleware(protectedHandler(t, &called))

	r := httptest.NewRequest("GET", "/users", nil)
	r.Header.Set("Authorization", "Bearer "+issueTestToken(t, time.Hour))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token revoked", w.Body.String())
}
