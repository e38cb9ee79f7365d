package middleware

import (
	"context"
	"net/http"

	"cargo-charter/charterdesk/internal/auth"
	"cargo-charter/charterdesk/internal/models/entities"
)

// keyStatusReader is the slice of the keys repository the auth
// middleware needs.
type keyStatusReader interface {
	GetStatus(ctx context.Context, key string) (*entities.ApiKey, error)
}

// AuthMiddleware validates the X-API-Key header against the api_keys
// table and stores the caller's claims in the request context.
func AuthMiddleware(keysRepo keyStatusReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				http.Error(w, "Unauthorized. Missing API Key", http.StatusUnauthorized)
				return
			}

			keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
				return
			}

			if !keyRes.Status {
				http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetRequestClaims(r.Context(), auth.MakeClaimsFromKey(keyRes))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
