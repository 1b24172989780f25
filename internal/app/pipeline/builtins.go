package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jsamuelsen11/go-operation-service/internal/app/operation"
	"github.com/jsamuelsen11/go-operation-service/internal/app/operation/actions"
	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Built-in pipeline names.
const (
	CacheInvalidate = "cache.invalidate"
	TaskEnqueue     = "task.enqueue"
	NoticePublish   = "notice.publish"
	RecordPut       = "record.put"
	RecordGet       = "record.get"
)

// Notice targets used by the built-in pipelines.
const (
	CacheTarget   = "cache"
	RecordsTarget = "records"
)

// recordCacheTTL bounds how long record.get keeps a record in the cache.
const recordCacheTTL = 5 * time.Minute

// InvalidateInput is the cache.invalidate body.
type InvalidateInput struct {
	Keys []string `json:"keys"`
}

// TaskInput is the task.enqueue body.
type TaskInput struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload,omitempty"`
	DelayMS int64          `json:"delay_ms,omitempty"`
	TTLMS   int64          `json:"ttl_ms,omitempty"`
}

// NoticeInput is the notice.publish body.
type NoticeInput struct {
	Target  string         `json:"target"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

// RecordInput is the record.put and record.get body. Value is ignored by
// record.get.
type RecordInput struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value,omitempty"`
}

// RecordOutput is returned by the record pipelines.
type RecordOutput struct {
	Key    string          `json:"key"`
	Value  json.RawMessage `json:"value"`
	Cached bool            `json:"cached"`
}

// RegisterBuiltins adds the built-in pipelines to r.
func RegisterBuiltins(r *Registry) error {
	return errors.Join(
		r.Register(Pipeline{
			Name:        CacheInvalidate,
			Description: "Clear cache keys once the operation commits and announce them on the cache target.",
			Actions:     []*operation.Action{invalidateKeys},
			Decode:      decodeAs[InvalidateInput],
		}),
		r.Register(Pipeline{
			Name:        TaskEnqueue,
			Description: "Dispatch a task to the work queue when the operation closes.",
			Actions:     []*operation.Action{enqueueTask},
			Decode:      decodeAs[TaskInput],
		}),
		r.Register(Pipeline{
			Name:        NoticePublish,
			Description: "Publish a notice to its target when the operation closes.",
			Actions:     []*operation.Action{publishNotice},
			Decode:      decodeAs[NoticeInput],
		}),
		r.Register(Pipeline{
			Name:        RecordPut,
			Description: "Store a JSON record in the transaction, then invalidate its cache entry.",
			Actions:     []*operation.Action{validateRecord, storeRecord},
			Decode:      decodeAs[RecordInput],
		}),
		r.Register(Pipeline{
			Name:        RecordGet,
			Description: "Read a JSON record through the cache.",
			Actions:     []*operation.Action{loadRecord},
			Decode:      decodeAs[RecordInput],
		}),
	)
}

func decodeAs[T any](raw json.RawMessage) (any, error) {
	return decodeJSON[T](raw)
}

// RecordCacheKey is the cache key of a stored record.
func RecordCacheKey(key string) string {
	return "record:" + key
}

var invalidateKeys = operation.Func("invalidate-keys",
	func(ctx context.Context, op *operation.Operation, in InvalidateInput) (map[string]int, error) {
		if len(in.Keys) == 0 {
			return nil, &domain.ValidationError{Fields: map[string]string{"keys": domain.MsgRequired}}
		}
		if err := op.Defer(actions.ClearCache, actions.Keys(in.Keys...)); err != nil {
			return nil, err
		}
		notice := domain.Notice{
			Event:   "invalidated",
			Payload: map[string]any{"keys": in.Keys},
			Merger:  domain.UnionNoticePayload,
		}
		if err := notifyIfWired(ctx, op, CacheTarget, notice); err != nil {
			return nil, err
		}
		return map[string]int{"keys": len(in.Keys)}, nil
	})

var enqueueTask = operation.Func("enqueue-task",
	func(_ context.Context, op *operation.Operation, in TaskInput) (map[string]string, error) {
		task := domain.Task{
			Name:    in.Name,
			Payload: in.Payload,
			Delay:   time.Duration(in.DelayMS) * time.Millisecond,
			TTL:     time.Duration(in.TTLMS) * time.Millisecond,
			Merger:  domain.ReplaceSameTask,
		}
		if err := task.Validate(); err != nil {
			return nil, err
		}
		if err := op.Defer(actions.Dispatch, actions.Tasks(task)); err != nil {
			return nil, err
		}
		return map[string]string{"task": task.Name}, nil
	})

var publishNotice = operation.Func("publish-notice",
	func(_ context.Context, op *operation.Operation, in NoticeInput) (map[string]string, error) {
		notice := domain.Notice{
			Target:  in.Target,
			Event:   in.Event,
			Payload: in.Payload,
			Merger:  domain.UnionNoticePayload,
		}
		if err := notice.Validate(); err != nil {
			return nil, err
		}
		if err := op.Defer(actions.Notify, actions.Notices(notice)); err != nil {
			return nil, err
		}
		return map[string]string{"target": notice.Target, "event": notice.Event}, nil
	})

var validateRecord = operation.Func("validate-record",
	func(_ context.Context, _ *operation.Operation, in RecordInput) (RecordInput, error) {
		fields := make(map[string]string)
		in.Key = strings.TrimSpace(in.Key)
		if in.Key == "" {
			fields["key"] = domain.MsgRequired
		}
		if len(in.Value) == 0 {
			fields["value"] = domain.MsgRequired
		} else if !json.Valid(in.Value) {
			fields["value"] = "must be valid JSON"
		}
		if len(fields) > 0 {
			return RecordInput{}, &domain.ValidationError{Fields: fields}
		}
		return in, nil
	})

var storeRecord = operation.Func("store-record",
	func(ctx context.Context, op *operation.Operation, in RecordInput) (RecordOutput, error) {
		dao, err := recordDao(op)
		if err != nil {
			return RecordOutput{}, err
		}
		if err := dao.PutJSON(ctx, in.Key, in.Value); err != nil {
			return RecordOutput{}, err
		}
		if _, err := op.Cache(); err == nil {
			if err := op.Defer(actions.ClearCache, actions.Keys(RecordCacheKey(in.Key))); err != nil {
				return RecordOutput{}, err
			}
		}
		notice := domain.Notice{
			Event:   "stored",
			Payload: map[string]any{"key": in.Key},
		}
		if err := notifyIfWired(ctx, op, RecordsTarget, notice); err != nil {
			return RecordOutput{}, err
		}
		return RecordOutput{Key: in.Key, Value: in.Value}, nil
	})

var loadRecord = operation.Func("load-record",
	func(ctx context.Context, op *operation.Operation, in RecordInput) (RecordOutput, error) {
		key := strings.TrimSpace(in.Key)
		if key == "" {
			return RecordOutput{}, &domain.ValidationError{Fields: map[string]string{"key": domain.MsgRequired}}
		}

		cache, cacheErr := op.Cache()
		if cacheErr == nil {
			entries, err := cache.Get(ctx, RecordCacheKey(key))
			switch {
			case err != nil:
				op.Logger().WarnContext(ctx, "cache read failed, falling back to store",
					slog.String("key", key),
					slog.Any("error", err),
				)
			case len(entries) == 1 && entries[0] != nil:
				return RecordOutput{Key: key, Value: entries[0], Cached: true}, nil
			}
		}

		dao, err := recordDao(op)
		if err != nil {
			return RecordOutput{}, err
		}
		var value json.RawMessage
		found, err := dao.GetJSON(ctx, key, &value)
		if err != nil {
			return RecordOutput{}, err
		}
		if !found {
			return RecordOutput{}, fmt.Errorf("record %q: %w", key, domain.ErrNotFound)
		}

		if cacheErr == nil {
			if err := cache.Set(ctx, RecordCacheKey(key), value, recordCacheTTL); err != nil {
				op.Logger().WarnContext(ctx, "cache write failed",
					slog.String("key", key),
					slog.Any("error", err),
				)
			}
		}
		return RecordOutput{Key: key, Value: value}, nil
	})

func recordDao(op *operation.Operation) (ports.RecordDao, error) {
	dao, err := op.Dao()
	if err != nil {
		return nil, err
	}
	rd, ok := dao.(ports.RecordDao)
	if !ok {
		return nil, fmt.Errorf("%w: dao does not store records", operation.ErrServiceNotConfigured)
	}
	return rd, nil
}

// notifyIfWired registers a buffered notice when a notifier is configured.
func notifyIfWired(ctx context.Context, op *operation.Operation, target string, n domain.Notice) error {
	err := op.Notify(ctx, target, n, false)
	if errors.Is(err, operation.ErrNotifierMissing) {
		return nil
	}
	return err
}
