package middleware

import (
	"net/http"

	"cargo-charter/charterdesk/internal/auth"
)

// IsAdminMiddleware rejects callers whose API key lacks the admin flag.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetRequestClaims(r.Context())
			if claims == nil || !claims.IsAdmin() {
				http.Error(w, "Forbidden. Admin key required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
