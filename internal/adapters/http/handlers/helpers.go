package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/logging"
)

// maxBodyBytes is the maximum accepted pipeline input size (1 MB).
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			slog.Any("error", err),
		)
	}
}

// readBody reads the request body up to maxBodyBytes. An oversized body is
// reported as a validation error on the input field.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		return body, nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, &domain.ValidationError{Fields: map[string]string{"input": "exceeds 1 MB"}}
	}
	return nil, &domain.ValidationError{Fields: map[string]string{"input": "unreadable body"}}
}
