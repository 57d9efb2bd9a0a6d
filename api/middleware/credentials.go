package middleware

import (
	"net/http"

	"github.com/foodhubhq/storefront-gateway/pkg/backend"
)

// Credentials stashes the caller's Cookie header in the request context
// so every backend call made on behalf of this request carries the
// caller's identity. It must run before any middleware or handler that
// talks to the backend.
func Credentials() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := backend.WithCredentials(r.Context(), r.Header.Get("Cookie"))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
