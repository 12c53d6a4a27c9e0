package middleware

import (
	"net/http"
	"strings"

	"github.com/lexnotes/storefront-service/internal/domain/identity"
	"github.com/lexnotes/storefront-service/internal/infrastructure/auth"
	"github.com/lexnotes/storefront-service/internal/infrastructure/http/response"
)

// NewAuthMiddleware resolves the caller's identity from a bearer token or
// the session cookie and attaches it to the request context. Requests
// without a valid token pass through anonymously.
func NewAuthMiddleware(tokens *auth.TokenManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r, cookieName); token != "" {
				if ident, err := tokens.Verify(token); err == nil {
					r = r.WithContext(identity.WithIdentity(r.Context(), ident))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests whose context carries no identity.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity.FromContext(r.Context()) == nil {
			response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}

func extractToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
