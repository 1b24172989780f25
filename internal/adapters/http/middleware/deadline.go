package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline returns middleware that bounds the request context by d. The
// handler still writes its own response; every collaborator call an
// operation makes observes the deadline, and the handler reports an exceeded
// deadline as 504. A non-positive d leaves the context untouched.
func Deadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
