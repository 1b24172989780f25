package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/middleware"
)

func TestDeadline_ContextCarriesDeadline(t *testing.T) {
	t.Parallel()

	var (
		hasDeadline bool
		remaining   time.Duration
	)
	handler := middleware.Deadline(5 * time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		var deadline time.Time
		deadline, hasDeadline = r.Context().Deadline()
		remaining = time.Until(deadline)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if !hasDeadline {
		t.Fatal("request context has no deadline")
	}
	if remaining <= 0 || remaining > 5*time.Second {
		t.Errorf("remaining = %v, want within (0, 5s]", remaining)
	}
}

func TestDeadline_ExpiresContext(t *testing.T) {
	t.Parallel()

	var ctxErr error
	handler := middleware.Deadline(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		ctxErr = r.Context().Err()
		w.WriteHeader(http.StatusGatewayTimeout)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", http.NoBody))

	if ctxErr == nil {
		t.Error("context error = nil, want deadline exceeded")
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestDeadline_NonPositiveIsPassThrough(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	handler := middleware.Deadline(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if hasDeadline {
		t.Error("request context has a deadline, want none")
	}
}
