package domain

import (
	"maps"
	"strings"
)

// NoticeMerger combines n with an already buffered notice for the same target.
// It returns false when the two notices must be kept apart.
type NoticeMerger func(n, existing Notice) (Notice, bool)

// Notice is a message addressed to a named target, sent through a Notifier when
// the operation closes.
type Notice struct {
	Target  string
	Event   string
	Payload map[string]any
	Merger  NoticeMerger `json:"-"`
}

// Merge tries to combine n with an existing notice. Notices without a merger
// never combine.
func (n Notice) Merge(existing Notice) (Notice, bool) {
	if n.Merger == nil {
		return Notice{}, false
	}
	merged, ok := n.Merger(n, existing)
	if !ok {
		return Notice{}, false
	}
	if merged.Merger == nil {
		merged.Merger = n.Merger
	}
	return merged, true
}

// Validate checks that the notice can be sent.
func (n Notice) Validate() error {
	if strings.TrimSpace(n.Target) == "" {
		return &ValidationError{Fields: map[string]string{"target": MsgRequired}}
	}
	return nil
}

// ReplaceSameNotice lets the incoming notice replace a buffered notice with the
// same target and event.
func ReplaceSameNotice(n, existing Notice) (Notice, bool) {
	if n.Target != existing.Target || n.Event != existing.Event {
		return Notice{}, false
	}
	return n, true
}

// UnionNoticePayload folds notices with the same target and event into one
// whose payload holds the keys of both. Incoming values win on conflict.
func UnionNoticePayload(n, existing Notice) (Notice, bool) {
	if n.Target != existing.Target || n.Event != existing.Event {
		return Notice{}, false
	}
	payload := make(map[string]any, len(existing.Payload)+len(n.Payload))
	maps.Copy(payload, existing.Payload)
	maps.Copy(payload, n.Payload)
	n.Payload = payload
	return n, true
}
