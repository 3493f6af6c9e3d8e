package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity Identity
	err      error
	gotToken string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (Identity, error) {
	s.gotToken = token
	return s.identity, s.err
}

func TestAuthMiddleware(t *testing.T) {
	okHandler := func(called *bool, gotIdentity *Identity) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			id, _ := IdentityFrom(r)
			*gotIdentity = id
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("malformed credentials never reach the verifier", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			path   string
			header string
		}{
			{name: "missing header", method: http.MethodGet, path: "/books"},
			{name: "wrong scheme", method: http.MethodPost, path: "/books", header: "Token abc123"},
			{name: "bearer without token", method: http.MethodDelete, path: "/books/1", header: "Bearer"},
			{name: "lowercase scheme", method: http.MethodPut, path: "/books/1", header: "bearer abc123"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				verifier := &stubVerifier{}
				called := false
				var identity Identity
				mw := AuthMiddleware(verifier)(okHandler(&called, &identity))

				r := httptest.NewRequest(tt.method, tt.path, nil)
				if tt.header != "" {
					r.Header.Set("Authorization", tt.header)
				}
				w := httptest.NewRecorder()
				mw.ServeHTTP(w, r)

				assert.Equal(t, http.StatusUnauthorized, w.Code)
				assert.JSONEq(t, `{"error": "Authorization header missing or invalid"}`, w.Body.String())
				assert.False(t, called)
				assert.Empty(t, verifier.gotToken)
			})
		}
	})

	t.Run("verified identity lands on the request context", func(t *testing.T) {
		verifier := &stubVerifier{identity: Identity{UserID: "u-1", Role: "USER"}}
		called := false
		var identity Identity
		mw := AuthMiddleware(verifier)(okHandler(&called, &identity))

		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.Header.Set("Authorization", "Bearer sometoken")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, r)

		require.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sometoken", verifier.gotToken)
		assert.Equal(t, Identity{UserID: "u-1", Role: "USER"}, identity)
	})

	t.Run("rejected token", func(t *testing.T) {
		verifier := &stubVerifier{err: errors.New("token is expired")}
		called := false
		var identity Identity
		mw := AuthMiddleware(verifier)(okHandler(&called, &identity))

		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.Header.Set("Authorization", "Bearer expired")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Invalid or expired token"}`, w.Body.String())
		assert.False(t, called)
	})
}
