package httpx

import (
	"context"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// MsgAuthHeaderInvalid is the fixed body returned whenever the credential
// is missing or does not carry the bearer prefix.
const MsgAuthHeaderInvalid = "Authorization header missing or invalid"

// TokenVerifier resolves a bearer token to a caller identity. The gate
// only checks the surface form of the credential; whether the token itself
// is trustworthy is this collaborator's call.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// AuthMiddleware rejects requests without a well-formed bearer credential
// before any other work happens, and attaches the verified identity to the
// request context otherwise.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				JSONError(w, http.StatusUnauthorized, MsgAuthHeaderInvalid, nil)
				return
			}
			token := strings.TrimPrefix(authHeader, bearerPrefix)

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
				return
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
