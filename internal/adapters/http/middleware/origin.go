package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HeaderOrigin names the subsystem an operation was started from.
const HeaderOrigin = "X-Origin"

type originKey struct{}

// WithOrigin returns a new context with the given operation origin stored in it.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext extracts the operation origin from the context.
// Returns an empty string if none is stored.
func OriginFromContext(ctx context.Context) string {
	if origin, ok := ctx.Value(originKey{}).(string); ok {
		return origin
	}
	return ""
}

// Origin returns middleware that reads the X-Origin header, falling back to
// fallback when the header is blank, and stores the result in the request
// context.
func Origin(fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get(HeaderOrigin))
			if origin == "" {
				origin = fallback
			}
			next.ServeHTTP(w, r.WithContext(WithOrigin(r.Context(), origin)))
		})
	}
}
