package httpx

import (
	"net/http"
	"strings"

	"bookregistry/internal/auth"
)

// AuthMiddleware authenticates the caller and injects the author id into the
// request context. Every state-mutating registry route sits behind it; the
// registry core itself never parses credentials.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(r, w, http.StatusUnauthorized, "UNAUTHENTICATED", "Missing or malformed bearer token", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONError(r, w, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid token", nil)
				return
			}

			ctx := ContextWithAuthor(r.Context(), claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
