package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Operation.validate(),
		c.Bolt.validate(),
		c.Redis.validate(),
		c.AMQP.validate(),
		c.Webhook.validate(),
		c.Guard.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (o *OperationConfig) validate() error {
	var errs []error

	if o.MaxConcurrency < 0 {
		errs = append(errs, fmt.Errorf("operation.max_concurrency must be >= 0, got %d", o.MaxConcurrency))
	}
	if strings.TrimSpace(o.DefaultOrigin) == "" {
		errs = append(errs, errors.New("operation.default_origin must not be empty"))
	}

	return errors.Join(errs...)
}

func (b *BoltConfig) validate() error {
	var errs []error

	if b.Path == "" {
		errs = append(errs, errors.New("bolt.path must not be empty"))
	}
	if b.Bucket == "" {
		errs = append(errs, errors.New("bolt.bucket must not be empty"))
	}
	if b.Timeout <= 0 {
		errs = append(errs, errors.New("bolt.timeout must be positive"))
	}

	return errors.Join(errs...)
}

// Redis and AMQP are optional; an empty URL leaves the collaborator unwired.
func (r *RedisConfig) validate() error {
	if r.URL == "" {
		return nil
	}
	if !strings.HasPrefix(r.URL, "redis://") && !strings.HasPrefix(r.URL, "rediss://") {
		return fmt.Errorf("redis.url must use the redis:// or rediss:// scheme")
	}
	return nil
}

func (a *AMQPConfig) validate() error {
	if a.URL == "" {
		return nil
	}

	var errs []error
	if !strings.HasPrefix(a.URL, "amqp://") && !strings.HasPrefix(a.URL, "amqps://") {
		errs = append(errs, errors.New("amqp.url must use the amqp:// or amqps:// scheme"))
	}
	if a.Queue == "" {
		errs = append(errs, errors.New("amqp.queue must not be empty when amqp.url is set"))
	}

	return errors.Join(errs...)
}

func (w *WebhookConfig) validate() error {
	if w.URL == "" {
		return nil
	}

	var errs []error
	if !strings.HasPrefix(w.URL, "http://") && !strings.HasPrefix(w.URL, "https://") {
		errs = append(errs, errors.New("webhook.url must use the http:// or https:// scheme"))
	}
	if w.Timeout <= 0 {
		errs = append(errs, errors.New("webhook.timeout must be positive when webhook.url is set"))
	}

	return errors.Join(errs...)
}

func (g *GuardConfig) validate() error {
	var errs []error

	if g.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("guard.circuit_breaker.max_failures must be >= 1, got %d",
			g.CircuitBreaker.MaxFailures))
	}
	if g.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("guard.rate_limit.requests_per_second must be >= 0, got %g",
			g.RateLimit.RequestsPerSecond))
	}
	if g.RateLimit.RequestsPerSecond > 0 && g.RateLimit.BurstSize < 1 {
		errs = append(errs, errors.New("guard.rate_limit.burst_size must be >= 1 when rate limiting is enabled"))
	}

	return errors.Join(errs...)
}
