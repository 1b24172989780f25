package boltdao_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/dao/boltdao"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/config"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openStore(t *testing.T) *boltdao.Store {
	t.Helper()
	store, err := boltdao.Open(&config.BoltConfig{
		Path:    filepath.Join(t.TempDir(), "nested", "test.db"),
		Bucket:  "records",
		Timeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func begin(t *testing.T, store *boltdao.Store) ports.RecordDao {
	t.Helper()
	dao, err := store.Client(context.Background(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	rd, ok := dao.(ports.RecordDao)
	require.True(t, ok, "Client() must return a RecordDao")
	return rd
}

func TestDao_CommitPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	dao := begin(t, store)
	assert.True(t, dao.IsActive())
	require.NoError(t, dao.PutJSON(ctx, "a", record{Name: "alpha", Count: 1}))

	var got record
	found, err := dao.GetJSON(ctx, "a", &got)
	require.NoError(t, err)
	assert.True(t, found, "write should be visible inside its transaction")

	require.NoError(t, dao.Close(ctx, ports.Commit))
	assert.False(t, dao.IsActive())

	next := begin(t, store)
	t.Cleanup(func() { _ = next.Close(ctx, ports.Rollback) })
	got = record{}
	found, err = next.GetJSON(ctx, "a", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, record{Name: "alpha", Count: 1}, got)
}

func TestDao_RollbackDiscards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	dao := begin(t, store)
	require.NoError(t, dao.PutJSON(ctx, "a", record{Name: "alpha"}))
	require.NoError(t, dao.Close(ctx, ports.Rollback))

	next := begin(t, store)
	t.Cleanup(func() { _ = next.Close(ctx, ports.Rollback) })
	found, err := next.GetJSON(ctx, "a", &record{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDao_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	dao := begin(t, store)
	require.NoError(t, dao.PutJSON(ctx, "a", 1))
	require.NoError(t, dao.Delete(ctx, "a"))
	require.NoError(t, dao.Delete(ctx, "missing"))

	found, err := dao.GetJSON(ctx, "a", new(int))
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, dao.Close(ctx, ports.Commit))
}

func TestDao_UseAfterClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	dao := begin(t, store)
	require.NoError(t, dao.Close(ctx, ports.Commit))

	assert.ErrorIs(t, dao.Close(ctx, ports.Rollback), boltdao.ErrTxClosed)
	assert.ErrorIs(t, dao.PutJSON(ctx, "a", 1), boltdao.ErrTxClosed)
	_, err := dao.GetJSON(ctx, "a", new(int))
	assert.ErrorIs(t, err, boltdao.ErrTxClosed)
}

func TestDao_UnknownOutcome(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	dao := begin(t, store)
	require.Error(t, dao.Close(ctx, ports.Outcome("maybe")))
	assert.False(t, dao.IsActive())
}

func TestDao_GetJSONDecodeError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	dao := begin(t, store)
	t.Cleanup(func() { _ = dao.Close(ctx, ports.Rollback) })
	require.NoError(t, dao.PutJSON(ctx, "a", "text"))

	found, err := dao.GetJSON(ctx, "a", new(int))
	assert.True(t, found)
	assert.Error(t, err)
}

func TestStore_HealthCheck(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	assert.Equal(t, "bolt", store.Name())
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestStore_ClientCanceledContext(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Client(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ClientWaitHonorsDeadline(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	held := begin(t, store)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := store.Client(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	require.NoError(t, held.Close(context.Background(), ports.Rollback))
}

func TestStore_ClientProceedsAfterClose(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	held := begin(t, store)

	got := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dao, err := store.Client(ctx, nil)
		if err == nil {
			err = dao.Close(ctx, ports.Rollback)
		}
		got <- err
	}()

	require.NoError(t, held.Close(context.Background(), ports.Commit))
	require.NoError(t, <-got)

	// A failed close still frees the writer.
	dao := begin(t, store)
	require.Error(t, dao.Close(context.Background(), ports.Outcome("bogus")))
	require.NoError(t, begin(t, store).Close(context.Background(), ports.Rollback))
}
