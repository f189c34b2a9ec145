package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/denizak/lootledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// claimsKey is the context key for storing the session claims.
	claimsKey contextKey = "claims"
)

// SessionClaims extracts the validated session claims from the context.
// Returns nil for anonymous requests.
func SessionClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// IsAdmin reports whether the request carries a valid admin session.
func IsAdmin(ctx context.Context) bool {
	claims := SessionClaims(ctx)
	return claims != nil && claims.IsAdmin()
}

// bearerToken pulls the token out of an Authorization header.
// Returns empty when the header is missing or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// WithIdentity returns a middleware that resolves a Bearer token into
// session claims on the request context. Requests without a token, or
// with an invalid one, pass through anonymously; read endpoints are
// public, so rejection happens later at RequireAdmin.
func WithIdentity(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := jwtManager.Validate(token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns a middleware that rejects the request before the
// handler runs unless the context carries a valid admin session. 401 for
// anonymous requests, 403 for authenticated non-admins.
func RequireAdmin(reject func(w http.ResponseWriter, status int, message string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := SessionClaims(r.Context())
			if claims == nil {
				reject(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
				return
			}
			if !claims.IsAdmin() {
				reject(w, http.StatusForbidden, "admin rights required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
