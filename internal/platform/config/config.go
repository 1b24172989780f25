// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Operation OperationConfig `koanf:"operation"`
	Bolt      BoltConfig      `koanf:"bolt"`
	Redis     RedisConfig     `koanf:"redis"`
	AMQP      AMQPConfig      `koanf:"amqp"`
	Webhook   WebhookConfig   `koanf:"webhook"`
	Guard     GuardConfig     `koanf:"guard"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// OperationConfig tunes how operations run.
// MaxConcurrency bounds deferred actions and flush sends; 0 means unbounded.
type OperationConfig struct {
	MaxConcurrency int    `koanf:"max_concurrency"`
	DefaultOrigin  string `koanf:"default_origin"`
}

// BoltConfig locates the bbolt file backing the transactional store.
type BoltConfig struct {
	Path    string        `koanf:"path"`
	Bucket  string        `koanf:"bucket"`
	Timeout time.Duration `koanf:"timeout"`
}

// RedisConfig holds the cache and notifier connection settings.
type RedisConfig struct {
	URL          string `koanf:"url"`
	CachePrefix  string `koanf:"cache_prefix"`
	NoticePrefix string `koanf:"notice_prefix"`
}

// AMQPConfig holds the task dispatcher connection settings.
type AMQPConfig struct {
	URL   string `koanf:"url"`
	Queue string `koanf:"queue"`
}

// WebhookConfig points notice delivery at an HTTP endpoint. When URL is set,
// each batch is POSTed to URL/{target} instead of Redis Pub/Sub.
type WebhookConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// GuardConfig protects collaborator calls.
type GuardConfig struct {
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds token bucket settings. A zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}
