package config

const (
	defaultServerPort = 8080

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "go-operation-service",

		"operation.max_concurrency": 0,
		"operation.default_origin":  "http",

		"bolt.path":    "data/operations.db",
		"bolt.bucket":  "records",
		"bolt.timeout": "1s",

		"redis.url":           "",
		"redis.cache_prefix":  "cache:",
		"redis.notice_prefix": "notice:",

		"amqp.url":   "",
		"amqp.queue": "tasks",

		"webhook.url":     "",
		"webhook.timeout": "5s",

		"guard.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"guard.circuit_breaker.timeout":         "30s",
		"guard.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"guard.rate_limit.requests_per_second":  0,
		"guard.rate_limit.burst_size":           0,
	}
}
