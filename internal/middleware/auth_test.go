package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hi4requency/fynstra/internal/config"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	var gotID string
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = UserIDFrom(r.Context())
	})
	h := AuthMiddleware(cfg)(next)

	t.Run("valid token reaches the handler with the subject", func(t *testing.T) {
		called, gotID = false, ""
		req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, "42"))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, "42", gotID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "42"))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserIDFrom_AbsentKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFrom(req.Context())
	assert.False(t, ok)
}
