package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveHeaders holds lowercase header names whose values never reach logs.
var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"cookie":              true,
	"set-cookie":          true,
}

// RedactHeaders returns the headers as a "headers" group attribute with
// sensitive values replaced. Keys are sorted and multi-value headers are
// joined with a comma.
func RedactHeaders(headers http.Header) slog.Attr {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	attrs := make([]any, 0, len(keys))
	for _, key := range keys {
		value := strings.Join(headers[key], ",")
		if sensitiveHeaders[strings.ToLower(key)] {
			value = redacted
		}
		attrs = append(attrs, slog.String(key, value))
	}
	return slog.Group("headers", attrs...)
}
