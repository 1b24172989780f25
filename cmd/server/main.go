// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
	"github.com/streadway/amqp"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/cache/rediscache"
	"github.com/jsamuelsen11/go-operation-service/internal/adapters/dao/boltdao"
	"github.com/jsamuelsen11/go-operation-service/internal/adapters/dispatcher/amqpdispatcher"
	adapthttp "github.com/jsamuelsen11/go-operation-service/internal/adapters/http"
	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-operation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-operation-service/internal/adapters/notifier/redisnotifier"
	"github.com/jsamuelsen11/go-operation-service/internal/adapters/notifier/webhooknotifier"

	"github.com/jsamuelsen11/go-operation-service/internal/app"
	"github.com/jsamuelsen11/go-operation-service/internal/app/executor"
	"github.com/jsamuelsen11/go-operation-service/internal/app/pipeline"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/config"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/guard"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/health"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/logging"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()
	res := &resources{}

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger, res)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		res.closeAll(logger)
		_ = otel.Shutdown(ctx)
		return fmt.Errorf("resolving server: %w", err)
	}

	registerHealthChecks(injector, cfg)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		res.closeAll(logger)
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests and the operations they run.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// No operation is running any more; release the store and brokers.
	res.closeAll(logger)

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

// resources collects connections opened while wiring so they can be closed
// in reverse order at shutdown.
type resources struct {
	mu      sync.Mutex
	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

func (r *resources) add(name string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, namedCloser{name: name, close: fn})
}

func (r *resources) closeAll(logger *slog.Logger) {
	r.mu.Lock()
	closers := slices.Clone(r.closers)
	r.closers = nil
	r.mu.Unlock()

	for _, c := range slices.Backward(closers) {
		if err := c.close(); err != nil {
			logger.Error("closing resource", slog.String("resource", c.name), slog.Any("error", err))
		}
	}
}

// broker is the AMQP connection and channel the dispatcher publishes on.
type broker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger, res *resources) {
	do.Provide(injector, func(_ do.Injector) (*boltdao.Store, error) {
		store, err := boltdao.Open(&cfg.Bolt)
		if err != nil {
			return nil, err
		}
		res.add("bolt", store.Close)
		return store, nil
	})

	if cfg.Redis.URL != "" {
		do.Provide(injector, func(_ do.Injector) (*redis.Client, error) {
			client, err := rediscache.Dial(cfg.Redis.URL)
			if err != nil {
				return nil, err
			}
			res.add("redis", client.Close)
			return client, nil
		})

		do.Provide(injector, func(i do.Injector) (*rediscache.Cache, error) {
			client := do.MustInvoke[*redis.Client](i)
			g := guard.New(&cfg.Guard, "redis-cache", logger)
			return rediscache.New(client, cfg.Redis.CachePrefix, g, logger), nil
		})

		do.Provide(injector, func(i do.Injector) (*redisnotifier.Notifier, error) {
			client := do.MustInvoke[*redis.Client](i)
			g := guard.New(&cfg.Guard, "redis-notifier", logger)
			return redisnotifier.New(client, cfg.Redis.NoticePrefix, g, logger), nil
		})
	}

	if cfg.AMQP.URL != "" {
		do.Provide(injector, func(_ do.Injector) (*broker, error) {
			conn, ch, err := amqpdispatcher.Dial(cfg.AMQP.URL)
			if err != nil {
				return nil, err
			}
			res.add("amqp", conn.Close)
			return &broker{conn: conn, ch: ch}, nil
		})

		do.Provide(injector, func(i do.Injector) (*amqpdispatcher.Dispatcher, error) {
			b := do.MustInvoke[*broker](i)
			g := guard.New(&cfg.Guard, "amqp-dispatcher", logger)
			return amqpdispatcher.New(b.ch, cfg.AMQP.Queue, g, logger)
		})
	}

	if cfg.Webhook.URL != "" {
		do.Provide(injector, func(i do.Injector) (*webhooknotifier.Notifier, error) {
			g := guard.New(&cfg.Guard, "webhook-notifier", logger)
			client := httpclient.New(cfg.Webhook.Timeout, g, do.MustInvoke[*telemetry.Metrics](i))
			return webhooknotifier.New(client, cfg.Webhook.URL, logger), nil
		})
	}

	do.Provide(injector, func(i do.Injector) (*executor.Executor, error) {
		ecfg := executor.Config{Database: do.MustInvoke[*boltdao.Store](i)}
		if cfg.Redis.URL != "" {
			ecfg.Cache = do.MustInvoke[*rediscache.Cache](i)
			ecfg.Notifier = do.MustInvoke[*redisnotifier.Notifier](i)
		}
		// A webhook replaces Redis Pub/Sub for notices.
		if cfg.Webhook.URL != "" {
			ecfg.Notifier = do.MustInvoke[*webhooknotifier.Notifier](i)
		}
		if cfg.AMQP.URL != "" {
			ecfg.Dispatcher = do.MustInvoke[*amqpdispatcher.Dispatcher](i)
		}

		return executor.New(ecfg,
			executor.WithLogger(logger),
			executor.WithMetrics(do.MustInvoke[*telemetry.Metrics](i)),
			executor.WithMaxConcurrency(cfg.Operation.MaxConcurrency),
		)
	})

	do.Provide(injector, func(_ do.Injector) (*pipeline.Registry, error) {
		reg := pipeline.NewRegistry()
		if err := pipeline.RegisterBuiltins(reg); err != nil {
			return nil, fmt.Errorf("registering pipelines: %w", err)
		}
		return reg, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.PipelineService, error) {
		reg := do.MustInvoke[*pipeline.Registry](i)
		exec := do.MustInvoke[*executor.Executor](i)
		return app.NewPipelineService(reg, exec, cfg.Operation.DefaultOrigin, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.PipelineHandler, error) {
		svc := do.MustInvoke[ports.PipelineService](i)
		return handlers.NewPipelineHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		pipelineH := do.MustInvoke[*handlers.PipelineHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(pipelineH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.Origin(cfg.Operation.DefaultOrigin),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Deadline(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// registerHealthChecks adds the store and every configured collaborator to
// the readiness registry. Called after the graph is wired, so every Invoke
// returns an already-built instance.
func registerHealthChecks(injector *do.RootScope, cfg *config.Config) {
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*boltdao.Store](injector))

	if cfg.Redis.URL != "" {
		registry.Register(do.MustInvoke[*rediscache.Cache](injector))
		if cfg.Webhook.URL == "" {
			registry.Register(do.MustInvoke[*redisnotifier.Notifier](injector))
		}
	}
	if cfg.Webhook.URL != "" {
		registry.Register(do.MustInvoke[*webhooknotifier.Notifier](injector))
	}
	if cfg.AMQP.URL != "" {
		registry.Register(do.MustInvoke[*amqpdispatcher.Dispatcher](injector))
	}
}
