// Package httpclient provides an instrumented HTTP client for outbound calls
// to collaborators reached over HTTP.
//
// Each call runs through:
//
//	Guard (breaker, limiter) → Header Injection → OTEL Span → HTTP
//
// Construction:
//
//	client := httpclient.New(5*time.Second, guard.New(&cfg.Guard, "webhook", logger), metrics)
//
// Executing requests:
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
//	resp, err := client.Do(ctx, req)
//
// Context propagation for header injection (set by inbound middleware and
// the executor):
//
//	ctx = httpclient.WithRequestID(ctx, "req-123")
//	ctx = httpclient.WithCorrelationID(ctx, operationID)
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/guard"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/go-operation-service/internal/platform/httpclient"

// Outbound correlation headers.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID returns a new context carrying the inbound request ID, sent
// as X-Request-ID on outbound calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID returns a new context carrying the operation ID, sent as
// X-Correlation-ID on outbound calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// CorrelationIDFromContext returns the ID stored by WithCorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 1 << 20 // 1 MB

// StatusError reports a response with a 4xx or 5xx status.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Detail)
}

// Is reports 5xx responses as domain.ErrUnavailable.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrUnavailable && e.StatusCode >= http.StatusInternalServerError
}

// Client is an instrumented HTTP client for one collaborator.
type Client struct {
	httpClient *http.Client
	guard      *guard.Guard
	metrics    *telemetry.Metrics
}

// New creates a Client. The guard names the collaborator in spans and
// metrics. A nil metrics skips metric recording.
func New(timeout time.Duration, g *guard.Guard, metrics *telemetry.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		guard:      g,
		metrics:    metrics,
	}
}

// Do sends req and returns the response for any status below 400; the caller
// closes its body. A 4xx or 5xx status is returned as a *StatusError with the
// body already closed.
//
// Transport errors and 5xx responses count as guard failures. 4xx responses
// do not, since the collaborator itself is healthy.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	c.injectHeaders(ctx, req)

	var resp *http.Response
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		r, err := c.httpClient.Do(req.WithContext(spanCtx))
		if err != nil {
			c.finishSpan(span, 0, err)
			return err
		}
		c.finishSpan(span, r.StatusCode, nil)

		if r.StatusCode >= http.StatusInternalServerError {
			return newStatusError(r)
		}
		resp = r
		return nil
	})
	if err == nil && resp.StatusCode >= http.StatusBadRequest {
		err = newStatusError(resp)
		resp = nil
	}

	c.recordMetrics(ctx, req.Method, start, err)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Name returns the collaborator's name.
func (c *Client) Name() string {
	return c.guard.Name()
}

// HealthCheck reports the breaker state. No network call is made.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.guard.HealthCheck(ctx)
}

// injectHeaders copies the request and correlation IDs from ctx onto req.
// Headers the caller already set are kept.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if id := RequestIDFromContext(ctx); id != "" && req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, id)
	}
	if id := CorrelationIDFromContext(ctx); id != "" && req.Header.Get(HeaderCorrelationID) == "" {
		req.Header.Set(HeaderCorrelationID, id)
	}
}

// startSpan creates a client span and injects W3C Trace Context into the
// request headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "HTTP "+req.Method+" "+c.Name(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.Name()),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

func (c *Client) finishSpan(span trace.Span, status int, err error) {
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case status >= http.StatusBadRequest:
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}

// recordMetrics runs outside the guard so breaker rejections are counted.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}

	status := http.StatusOK
	result := "success"
	var serr *StatusError
	switch {
	case errors.As(err, &serr):
		status = serr.StatusCode
		result = "error"
	case errors.Is(err, domain.ErrUnavailable):
		status = 0
		result = "circuit_open"
	case err != nil:
		status = 0
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeer.String(c.Name()),
		telemetry.AttrResult.String(result),
	)

	c.metrics.ClientRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

// problemDetail is the part of an RFC 9457 body the client reads.
type problemDetail struct {
	Detail string `json:"detail"`
}

// newStatusError drains and closes the response body. The detail comes from
// an application/problem+json body when there is one, else the status text.
func newStatusError(resp *http.Response) *StatusError {
	defer func() { _ = resp.Body.Close() }()

	detail := http.StatusText(resp.StatusCode)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err == nil && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		var pd problemDetail
		if json.Unmarshal(body, &pd) == nil && pd.Detail != "" {
			detail = pd.Detail
		}
	}

	return &StatusError{StatusCode: resp.StatusCode, Detail: detail}
}
