package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-operation-service/internal/app/executor"
	"github.com/jsamuelsen11/go-operation-service/internal/app/operation"
	"github.com/jsamuelsen11/go-operation-service/internal/app/pipeline"
	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
	"github.com/jsamuelsen11/go-operation-service/mocks"
)

// services lists the collaborators handed to the executor; nil fields are
// left unwired.
type services struct {
	dao        ports.Dao
	cache      ports.Cache
	notifier   ports.Notifier
	dispatcher ports.Dispatcher
}

func run(t *testing.T, svc services, name string, body string) (any, error) {
	t.Helper()

	reg := pipeline.NewRegistry()
	require.NoError(t, pipeline.RegisterBuiltins(reg))
	p, err := reg.Get(name)
	require.NoError(t, err)

	input, err := p.DecodeInput(json.RawMessage(body))
	if err != nil {
		return nil, err
	}

	db := mocks.NewMockDatabase(t)
	db.EXPECT().Client(mock.Anything, mock.Anything).Return(svc.dao, nil)
	cfg := executor.Config{Database: db}

	if svc.cache != nil {
		f := mocks.NewMockCacheFactory(t)
		f.EXPECT().Client(mock.Anything).Return(svc.cache)
		cfg.Cache = f
	}
	if svc.notifier != nil {
		f := mocks.NewMockNotifierFactory(t)
		f.EXPECT().Client(mock.Anything).Return(svc.notifier)
		cfg.Notifier = f
	}
	if svc.dispatcher != nil {
		f := mocks.NewMockDispatcherFactory(t)
		f.EXPECT().Client(mock.Anything).Return(svc.dispatcher)
		cfg.Dispatcher = f
	}

	exec, err := executor.New(cfg, executor.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	return exec.Run(context.Background(),
		operation.Config{ID: "op-1", Name: p.Name, Origin: "test"}, p.Actions, input)
}

func committingDao(t *testing.T) *mocks.MockRecordDao {
	t.Helper()
	dao := mocks.NewMockRecordDao(t)
	dao.EXPECT().IsActive().Return(true).Once()
	dao.EXPECT().Close(mock.Anything, ports.Commit).Return(nil).Once()
	return dao
}

func rollingBackDao(t *testing.T) *mocks.MockRecordDao {
	t.Helper()
	dao := mocks.NewMockRecordDao(t)
	dao.EXPECT().IsActive().Return(true).Once()
	dao.EXPECT().Close(mock.Anything, ports.Rollback).Return(nil).Once()
	return dao
}

// --- cache.invalidate ---

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	cache := mocks.NewMockCache(t)
	notifier := mocks.NewMockNotifier(t)
	cache.EXPECT().Clear(mock.Anything, "a", "b").Return(nil).Once()
	notifier.EXPECT().Send(mock.Anything, pipeline.CacheTarget, mock.MatchedBy(func(ns []domain.Notice) bool {
		return len(ns) == 1 && ns[0].Event == "invalidated"
	})).Return(nil).Once()

	out, err := run(t, services{dao: committingDao(t), cache: cache, notifier: notifier},
		pipeline.CacheInvalidate, `{"keys":["a","b"]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"keys": 2}, out)
}

func TestCacheInvalidate_WithoutNotifier(t *testing.T) {
	t.Parallel()

	cache := mocks.NewMockCache(t)
	cache.EXPECT().Clear(mock.Anything, "a").Return(nil).Once()

	_, err := run(t, services{dao: committingDao(t), cache: cache}, pipeline.CacheInvalidate, `{"keys":["a"]}`)
	require.NoError(t, err)
}

func TestCacheInvalidate_RequiresKeys(t *testing.T) {
	t.Parallel()

	_, err := run(t, services{dao: rollingBackDao(t)}, pipeline.CacheInvalidate, `{"keys":[]}`)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// --- task.enqueue ---

func TestTaskEnqueue(t *testing.T) {
	t.Parallel()

	dispatcher := mocks.NewMockDispatcher(t)
	var sent []domain.Task
	dispatcher.EXPECT().Send(mock.Anything, mock.Anything).
		Run(func(_ context.Context, tasks []domain.Task) { sent = tasks }).
		Return(nil).Once()

	out, err := run(t, services{dao: committingDao(t), dispatcher: dispatcher},
		pipeline.TaskEnqueue, `{"name":"reindex","payload":{"id":7},"delay_ms":1500,"ttl_ms":60000}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"task": "reindex"}, out)

	require.Len(t, sent, 1)
	assert.Equal(t, "reindex", sent[0].Name)
	assert.Equal(t, 1500*time.Millisecond, sent[0].Delay)
	assert.Equal(t, time.Minute, sent[0].TTL)
	assert.InDelta(t, 7, sent[0].Payload["id"], 0)
}

func TestTaskEnqueue_Invalid(t *testing.T) {
	t.Parallel()

	_, err := run(t, services{dao: rollingBackDao(t)}, pipeline.TaskEnqueue, `{"name":"","delay_ms":-1}`)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "delay")
}

func TestTaskEnqueue_BadJSON(t *testing.T) {
	t.Parallel()

	_, err := run(t, services{}, pipeline.TaskEnqueue, `{"name":`)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// --- notice.publish ---

func TestNoticePublish(t *testing.T) {
	t.Parallel()

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Send(mock.Anything, "users", mock.MatchedBy(func(ns []domain.Notice) bool {
		return len(ns) == 1 && ns[0].Event == "updated" && ns[0].Target == "users"
	})).Return(nil).Once()

	out, err := run(t, services{dao: committingDao(t), notifier: notifier},
		pipeline.NoticePublish, `{"target":"users","event":"updated"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"target": "users", "event": "updated"}, out)
}

func TestNoticePublish_NoNotifier(t *testing.T) {
	t.Parallel()

	// The deferred notify fails at close, after the commit.
	_, err := run(t, services{dao: committingDao(t)}, pipeline.NoticePublish, `{"target":"users","event":"updated"}`)
	assert.ErrorIs(t, err, operation.ErrNotifierMissing)
}

// --- record.put / record.get ---

func TestRecordPut(t *testing.T) {
	t.Parallel()

	dao := committingDao(t)
	cache := mocks.NewMockCache(t)
	dao.EXPECT().PutJSON(mock.Anything, "k", json.RawMessage(`{"a":1}`)).Return(nil).Once()
	cache.EXPECT().Clear(mock.Anything, pipeline.RecordCacheKey("k")).Return(nil).Once()

	out, err := run(t, services{dao: dao, cache: cache}, pipeline.RecordPut, `{"key":" k ","value":{"a":1}}`)
	require.NoError(t, err)
	assert.Equal(t, pipeline.RecordOutput{Key: "k", Value: json.RawMessage(`{"a":1}`)}, out)
}

func TestRecordPut_StoreFailureRollsBack(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk full")
	dao := rollingBackDao(t)
	dao.EXPECT().PutJSON(mock.Anything, "k", mock.Anything).Return(errDisk).Once()

	_, err := run(t, services{dao: dao}, pipeline.RecordPut, `{"key":"k","value":1}`)
	assert.ErrorIs(t, err, errDisk)
}

func TestRecordPut_Validation(t *testing.T) {
	t.Parallel()

	_, err := run(t, services{dao: rollingBackDao(t)}, pipeline.RecordPut, `{"key":""}`)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"key": domain.MsgRequired, "value": domain.MsgRequired}, verr.Fields)
}

func TestRecordPut_PlainDao(t *testing.T) {
	t.Parallel()

	dao := mocks.NewMockDao(t)
	dao.EXPECT().IsActive().Return(true).Once()
	dao.EXPECT().Close(mock.Anything, ports.Rollback).Return(nil).Once()

	_, err := run(t, services{dao: dao}, pipeline.RecordPut, `{"key":"k","value":1}`)
	assert.ErrorIs(t, err, operation.ErrServiceNotConfigured)
}

func TestRecordGet_CacheHit(t *testing.T) {
	t.Parallel()

	cache := mocks.NewMockCache(t)
	cache.EXPECT().Get(mock.Anything, pipeline.RecordCacheKey("k")).
		Return([][]byte{[]byte(`"cached"`)}, nil).Once()

	out, err := run(t, services{dao: committingDao(t), cache: cache}, pipeline.RecordGet, `{"key":"k"}`)
	require.NoError(t, err)
	assert.Equal(t, pipeline.RecordOutput{Key: "k", Value: json.RawMessage(`"cached"`), Cached: true}, out)
}

func TestRecordGet_MissFillsCache(t *testing.T) {
	t.Parallel()

	dao := committingDao(t)
	cache := mocks.NewMockCache(t)
	cache.EXPECT().Get(mock.Anything, pipeline.RecordCacheKey("k")).Return([][]byte{nil}, nil).Once()
	dao.EXPECT().GetJSON(mock.Anything, "k", mock.Anything).
		Run(func(_ context.Context, _ string, v any) {
			*(v.(*json.RawMessage)) = json.RawMessage(`{"a":1}`)
		}).
		Return(true, nil).Once()
	cache.EXPECT().Set(mock.Anything, pipeline.RecordCacheKey("k"), []byte(`{"a":1}`), mock.Anything).
		Return(errors.New("readonly replica")).Once()

	out, err := run(t, services{dao: dao, cache: cache}, pipeline.RecordGet, `{"key":"k"}`)
	require.NoError(t, err)
	assert.Equal(t, pipeline.RecordOutput{Key: "k", Value: json.RawMessage(`{"a":1}`)}, out)
}

func TestRecordGet_NotFound(t *testing.T) {
	t.Parallel()

	dao := rollingBackDao(t)
	dao.EXPECT().GetJSON(mock.Anything, "k", mock.Anything).Return(false, nil).Once()

	_, err := run(t, services{dao: dao}, pipeline.RecordGet, `{"key":"k"}`)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
