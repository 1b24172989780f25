// Package webhooknotifier implements the notifier port over HTTP. Each batch
// is POSTed as one JSON document to baseURL/{target}.
package webhooknotifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Notifier        = (*Notifier)(nil)
	_ ports.NotifierFactory = (*Notifier)(nil)
)

// maxDrainSize caps how much of an acknowledgement body is read and dropped.
const maxDrainSize = 64 << 10

// Delivery is the JSON body POSTed for one batch.
type Delivery struct {
	Target  string        `json:"target"`
	Notices []NoticeEntry `json:"notices"`
}

// NoticeEntry is one notice inside a Delivery.
type NoticeEntry struct {
	Event   string         `json:"event,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Notifier posts notice batches to a webhook.
type Notifier struct {
	client  *httpclient.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a Notifier. A nil logger falls back to slog.Default().
func New(client *httpclient.Client, baseURL string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{client: client, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

// Client returns a Notifier that logs through logger.
func (n *Notifier) Client(logger *slog.Logger) ports.Notifier {
	cp := *n
	if logger != nil {
		cp.logger = logger
	}
	return &cp
}

// Endpoint returns the URL a target's batches are posted to.
func (n *Notifier) Endpoint(target string) string {
	return n.baseURL + "/" + url.PathEscape(target)
}

// Send posts notices as one request. An empty batch is not sent.
func (n *Notifier) Send(ctx context.Context, target string, notices []domain.Notice) error {
	if len(notices) == 0 {
		return nil
	}

	d := Delivery{Target: target, Notices: make([]NoticeEntry, 0, len(notices))}
	for _, notice := range notices {
		d.Notices = append(d.Notices, NoticeEntry{Event: notice.Event, Payload: notice.Payload})
	}
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding notices for %s: %w", target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint(target), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request for %s: %w", target, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("webhook post %s: %w", target, err)
	}
	// Read to EOF so the transport can reuse the connection.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))
	_ = resp.Body.Close()

	n.logger.DebugContext(ctx, "notices posted",
		slog.String("target", target),
		slog.Int("count", len(notices)),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}

// Name implements ports.HealthChecker.
func (n *Notifier) Name() string {
	return n.client.Name()
}

// HealthCheck reports the breaker state.
func (n *Notifier) HealthCheck(ctx context.Context) error {
	return n.client.HealthCheck(ctx)
}
