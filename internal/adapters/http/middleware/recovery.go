package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/dto"
)

// Recovery returns middleware that recovers from panics in downstream handlers.
// Panics raised inside actions are already converted by the operation; this
// catches the ones raised by the adapter itself. The panic value and stack are
// logged and the client gets a generic RFC 9457 500, unless the response has
// already started.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				// net/http relies on ErrAbortHandler to drop the connection
				// quietly, even when it arrives wrapped.
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if !rw.headerWritten {
					dto.WriteErrorResponse(rw, r, dto.ErrInternal)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
