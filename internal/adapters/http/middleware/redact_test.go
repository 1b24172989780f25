package middleware_test

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/middleware"
)

const redactedValue = "[REDACTED]"

// headerValues flattens the group returned by RedactHeaders.
func headerValues(t *testing.T, attr slog.Attr) (keys []string, values map[string]string) {
	t.Helper()
	if attr.Key != "headers" {
		t.Fatalf("attr key = %q, want %q", attr.Key, "headers")
	}
	if attr.Value.Kind() != slog.KindGroup {
		t.Fatalf("attr kind = %v, want group", attr.Value.Kind())
	}
	values = map[string]string{}
	for _, a := range attr.Value.Group() {
		keys = append(keys, a.Key)
		values[a.Key] = a.Value.String()
	}
	return keys, values
}

func TestRedactHeaders_RedactsSensitive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		value  string
	}{
		{name: "authorization", header: "Authorization", value: "Bearer secret-token"},
		{name: "api key", header: "X-Api-Key", value: "my-api-key-value"},
		{name: "cookie", header: "Cookie", value: "session=abc123"},
		{name: "proxy authorization", header: "Proxy-Authorization", value: "Basic abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, values := headerValues(t, middleware.RedactHeaders(http.Header{tt.header: {tt.value}}))
			if values[tt.header] != redactedValue {
				t.Errorf("%s = %q, want %q", tt.header, values[tt.header], redactedValue)
			}
		})
	}
}

func TestRedactHeaders_PassesThroughNonSensitive(t *testing.T) {
	t.Parallel()

	headers := http.Header{
		"Content-Type": {"application/json"},
		"X-Origin":     {"billing"},
	}
	_, values := headerValues(t, middleware.RedactHeaders(headers))

	if values["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want %q", values["Content-Type"], "application/json")
	}
	if values["X-Origin"] != "billing" {
		t.Errorf("X-Origin = %q, want %q", values["X-Origin"], "billing")
	}
}

func TestRedactHeaders_JoinsMultiValueHeaders(t *testing.T) {
	t.Parallel()

	_, values := headerValues(t, middleware.RedactHeaders(http.Header{
		"Accept": {"text/html", "application/json"},
	}))

	if values["Accept"] != "text/html,application/json" {
		t.Errorf("Accept = %q, want %q", values["Accept"], "text/html,application/json")
	}
}

func TestRedactHeaders_SortsKeys(t *testing.T) {
	t.Parallel()

	keys, _ := headerValues(t, middleware.RedactHeaders(http.Header{
		"X-Request-Id":  {"1"},
		"Accept":        {"*/*"},
		"Authorization": {"Bearer x"},
	}))

	want := []string{"Accept", "Authorization", "X-Request-Id"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestRedactHeaders_EmptyHeaders(t *testing.T) {
	t.Parallel()

	keys, _ := headerValues(t, middleware.RedactHeaders(http.Header{}))
	if len(keys) != 0 {
		t.Errorf("len(keys) = %d, want 0", len(keys))
	}
}
