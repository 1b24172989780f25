// Package boltdao implements the transactional data-access port on a bbolt
// file. Every operation gets its own writable transaction. Only one is open
// at a time: a second operation waits in Client until the first commits or
// rolls back, or until its context is done.
package boltdao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/sync/semaphore"

	"github.com/jsamuelsen11/go-operation-service/internal/platform/config"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// ErrTxClosed is returned when a Dao is used after Close.
var ErrTxClosed = errors.New("boltdao: transaction closed")

// Compile-time interface checks.
var (
	_ ports.Database      = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
	_ ports.RecordDao     = (*Dao)(nil)
)

// Store owns the bbolt database and hands out one Dao per operation.
type Store struct {
	db     *bolt.DB
	bucket []byte
	writer *semaphore.Weighted
}

// Open opens (or creates) the database file and its bucket.
func Open(cfg *config.BoltConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating bolt directory: %w", err)
		}
	}

	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database %s: %w", cfg.Path, err)
	}

	bucket := []byte(cfg.Bucket)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket %s: %w", cfg.Bucket, err)
	}

	return &Store{db: db, bucket: bucket, writer: semaphore.NewWeighted(1)}, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Client begins a writable transaction and wraps it in a Dao. It waits for
// the open transaction, if any, to close; ctx bounds the wait.
func (s *Store) Client(ctx context.Context, logger *slog.Logger) (ports.Dao, error) {
	if err := s.writer.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for bolt writer: %w", err)
	}
	tx, err := s.db.Begin(true)
	if err != nil {
		s.writer.Release(1)
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	release := sync.OnceFunc(func() { s.writer.Release(1) })
	return &Dao{tx: tx, bucket: s.bucket, logger: logger, release: release}, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "bolt"
}

// HealthCheck verifies the bucket is readable.
func (s *Store) HealthCheck(_ context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return fmt.Errorf("bolt: bucket %s missing", s.bucket)
		}
		return nil
	})
}

// Dao is one writable transaction. It is safe for concurrent use, though
// bbolt applies the writes in call order.
type Dao struct {
	mu      sync.Mutex
	tx      *bolt.Tx
	bucket  []byte
	logger  *slog.Logger
	release func()
}

// IsActive reports whether the transaction is still open.
func (d *Dao) IsActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx != nil
}

// Close commits or rolls back the transaction. The Dao is inactive
// afterwards even if the commit fails.
func (d *Dao) Close(ctx context.Context, outcome ports.Outcome) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return ErrTxClosed
	}
	tx := d.tx
	d.tx = nil
	defer d.release()

	switch outcome {
	case ports.Commit:
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing: %w", err)
		}
		d.logger.DebugContext(ctx, "bolt transaction committed")
		return nil
	case ports.Rollback:
		if err := tx.Rollback(); err != nil {
			return fmt.Errorf("rolling back: %w", err)
		}
		d.logger.DebugContext(ctx, "bolt transaction rolled back")
		return nil
	default:
		_ = tx.Rollback()
		return fmt.Errorf("boltdao: unknown outcome %q", outcome)
	}
}

// PutJSON stores v as JSON under key.
func (d *Dao) PutJSON(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	return d.update(func(b *bolt.Bucket) error {
		return b.Put([]byte(key), data)
	})
}

// GetJSON decodes the value under key into v. It reports false when the key
// does not exist.
func (d *Dao) GetJSON(_ context.Context, key string, v any) (bool, error) {
	var found bool
	err := d.update(func(b *bolt.Bucket) error {
		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshaling %s: %w", key, err)
		}
		return nil
	})
	return found, err
}

// Delete removes key. Deleting a missing key is not an error.
func (d *Dao) Delete(_ context.Context, key string) error {
	return d.update(func(b *bolt.Bucket) error {
		return b.Delete([]byte(key))
	})
}

func (d *Dao) update(fn func(b *bolt.Bucket) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return ErrTxClosed
	}
	b := d.tx.Bucket(d.bucket)
	if b == nil {
		return fmt.Errorf("boltdao: bucket %s missing", d.bucket)
	}
	return fn(b)
}
