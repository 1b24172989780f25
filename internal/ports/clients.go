package ports

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
)

// Outcome selects how a Dao finishes its transaction.
type Outcome string

// Dao outcomes.
const (
	Commit   Outcome = "commit"
	Rollback Outcome = "rollback"
)

// Dao is a transactional data-access handle owned by one operation.
type Dao interface {
	// IsActive reports whether the transaction is still open.
	IsActive() bool

	// Close finishes the transaction with the given outcome. After Close
	// returns, IsActive reports false whether or not Close failed.
	Close(ctx context.Context, outcome Outcome) error
}

// RecordDao is a Dao that also stores JSON-encoded records by key inside its
// transaction.
type RecordDao interface {
	Dao

	PutJSON(ctx context.Context, key string, v any) error

	// GetJSON decodes the record into v and reports whether it exists.
	GetJSON(ctx context.Context, key string, v any) (bool, error)

	Delete(ctx context.Context, key string) error
}

// Cache is a key/value cache. Get returns one entry per key, nil on a miss.
type Cache interface {
	Get(ctx context.Context, keys ...string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context, keys ...string) error
}

// Notifier delivers a batch of notices to one target.
type Notifier interface {
	Send(ctx context.Context, target string, notices []domain.Notice) error
}

// Dispatcher delivers a batch of tasks to a work queue.
type Dispatcher interface {
	Send(ctx context.Context, tasks []domain.Task) error
}

// Database hands out a fresh Dao per operation. Client begins the
// transaction the Dao wraps.
type Database interface {
	Client(ctx context.Context, logger *slog.Logger) (Dao, error)
}

// CacheFactory builds the Cache an operation uses.
type CacheFactory interface {
	Client(logger *slog.Logger) Cache
}

// NotifierFactory builds the Notifier an operation uses.
type NotifierFactory interface {
	Client(logger *slog.Logger) Notifier
}

// DispatcherFactory builds the Dispatcher an operation uses.
type DispatcherFactory interface {
	Client(logger *slog.Logger) Dispatcher
}
