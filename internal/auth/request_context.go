package auth

import (
	"context"
)

type contextKey string

var requestClaimsKey contextKey = "request_claims"

// SetRequestClaims stores the caller's claims in the request context.
func SetRequestClaims(ctx context.Context, claims RequestClaims) context.Context {
	return context.WithValue(ctx, requestClaimsKey, claims)
}

// GetRequestClaims retrieves the caller's claims, or nil when the
// request never passed the auth middleware.
func GetRequestClaims(ctx context.Context) RequestClaims {
	if claims, ok := ctx.Value(requestClaimsKey).(RequestClaims); ok {
		return claims
	}
	return nil
}
