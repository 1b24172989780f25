package operation

import "github.com/jsamuelsen11/go-operation-service/internal/domain"

// mergeable is an item that knows how to absorb another item of its kind.
type mergeable[T any] interface {
	Merge(existing T) (T, bool)
}

// absorb merges item against every pending entry. Entries it absorbs are
// dropped and the (possibly merged) item is appended last.
func absorb[T mergeable[T]](pending []T, item T) []T {
	kept := make([]T, 0, len(pending)+1)
	for _, existing := range pending {
		if merged, ok := item.Merge(existing); ok {
			item = merged
			continue
		}
		kept = append(kept, existing)
	}
	return append(kept, item)
}

// noticeBatch is the set of notices flushed to one target.
type noticeBatch struct {
	target  string
	notices []domain.Notice
}

// noticeBuffer holds pending notices per target, targets in first-seen order.
type noticeBuffer struct {
	targets []string
	pending map[string][]domain.Notice
}

func newNoticeBuffer() *noticeBuffer {
	return &noticeBuffer{pending: make(map[string][]domain.Notice)}
}

func (b *noticeBuffer) add(n domain.Notice) {
	list, seen := b.pending[n.Target]
	if !seen {
		b.targets = append(b.targets, n.Target)
	}
	b.pending[n.Target] = absorb(list, n)
}

// take empties the buffer and returns one batch per target.
func (b *noticeBuffer) take() []noticeBatch {
	batches := make([]noticeBatch, 0, len(b.targets))
	for _, target := range b.targets {
		batches = append(batches, noticeBatch{target: target, notices: b.pending[target]})
	}
	b.targets = nil
	b.pending = make(map[string][]domain.Notice)
	return batches
}

// taskBuffer holds pending tasks in one global list.
type taskBuffer struct {
	pending []domain.Task
}

func (b *taskBuffer) add(t domain.Task) {
	b.pending = absorb(b.pending, t)
}

func (b *taskBuffer) take() []domain.Task {
	out := b.pending
	b.pending = nil
	return out
}
