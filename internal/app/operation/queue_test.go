package operation

import (
	"context"
	"slices"
	"testing"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
)

func noopRun(context.Context, *Operation, any) (any, error) { return nil, nil }

func sumMerge(incoming, existing any) (any, bool) {
	return incoming.(int) + existing.(int), true
}

// --- deferredQueue tests ---

func TestDeferredQueue_MergesByActionIdentity(t *testing.T) {
	t.Parallel()

	a := NewAction("sum", noopRun, WithMerge(sumMerge))
	b := NewAction("sum", noopRun, WithMerge(sumMerge))
	q := newDeferredQueue()

	if q.add(a, 1) {
		t.Error("first add reported a merge")
	}
	if !q.add(a, 2) {
		t.Error("second add of the same action did not merge")
	}
	if q.add(b, 5) {
		t.Error("a distinct action with the same name merged")
	}
	if q.len() != 2 {
		t.Fatalf("len() = %d, want 2", q.len())
	}

	got := q.drain()
	if got[0].action != a || got[0].input != 3 {
		t.Errorf("envelope 0 = (%s, %v), want (a, 3)", got[0].action.name, got[0].input)
	}
	if got[1].action != b || got[1].input != 5 {
		t.Errorf("envelope 1 = (%s, %v), want (b, 5)", got[1].action.name, got[1].input)
	}
	if q.len() != 0 {
		t.Errorf("len() after drain = %d, want 0", q.len())
	}
}

func TestDeferredQueue_FirstAcceptingEnvelopeWins(t *testing.T) {
	t.Parallel()

	evenOdd := WithMerge(func(incoming, existing any) (any, bool) {
		i, e := incoming.(int), existing.(int)
		if i%2 != e%2 {
			return nil, false
		}
		return max(i, e), true
	})
	a := NewAction("parity", noopRun, evenOdd)
	q := newDeferredQueue()

	for _, n := range []int{1, 2, 3, 4, 5} {
		q.add(a, n)
	}

	var inputs []int
	for _, env := range q.drain() {
		inputs = append(inputs, env.input.(int))
	}
	if !slices.Equal(inputs, []int{5, 4}) {
		t.Errorf("inputs = %v, want [5 4]", inputs)
	}
}

func TestDeferredQueue_NoMergeKeepsEach(t *testing.T) {
	t.Parallel()

	a := NewAction("plain", noopRun)
	q := newDeferredQueue()
	q.add(a, "x")
	q.add(a, "x")

	if q.len() != 2 {
		t.Errorf("len() = %d, want 2", q.len())
	}
}

// --- notice and task buffer tests ---

func TestNoticeBuffer_PerTargetOrder(t *testing.T) {
	t.Parallel()

	b := newNoticeBuffer()
	b.add(domain.Notice{Target: "b", Event: "one"})
	b.add(domain.Notice{Target: "a", Event: "two"})
	b.add(domain.Notice{Target: "b", Event: "three"})

	batches := b.take()
	if len(batches) != 2 || batches[0].target != "b" || batches[1].target != "a" {
		t.Fatalf("batches = %+v, want targets [b a]", batches)
	}
	if len(batches[0].notices) != 2 {
		t.Errorf("batch b has %d notices, want 2", len(batches[0].notices))
	}
	if len(b.take()) != 0 {
		t.Error("take() after take() returned batches")
	}
}

func TestAbsorb_MergedItemMovesLast(t *testing.T) {
	t.Parallel()

	pending := []domain.Task{
		{Name: "a", Merger: domain.ReplaceSameTask},
		{Name: "b"},
	}
	got := absorb(pending, domain.Task{Name: "a", Payload: map[string]any{"v": 2}, Merger: domain.ReplaceSameTask})

	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "a" {
		t.Fatalf("absorb() = %+v, want [b a]", got)
	}
	if got[1].Payload["v"] != 2 {
		t.Errorf("merged payload = %v, want incoming", got[1].Payload)
	}
}

func TestAbsorb_AbsorbsSeveral(t *testing.T) {
	t.Parallel()

	always := func(task, _ domain.Task) (domain.Task, bool) { return task, true }
	tb := &taskBuffer{}
	tb.add(domain.Task{Name: "x"})
	tb.add(domain.Task{Name: "y"})
	tb.add(domain.Task{Name: "z", Merger: always})

	got := tb.take()
	if len(got) != 1 || got[0].Name != "z" {
		t.Errorf("take() = %+v, want only z", got)
	}
	if tb.take() != nil {
		t.Error("take() after take() returned tasks")
	}
}
