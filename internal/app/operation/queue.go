package operation

// envelope pairs a deferred action with its accumulated input.
type envelope struct {
	action *Action
	input  any
}

// deferredQueue keeps envelopes in registration order and indexes them by
// action so a merge only scans envelopes of the same action.
type deferredQueue struct {
	order    []*envelope
	byAction map[*Action][]*envelope
}

func newDeferredQueue() *deferredQueue {
	return &deferredQueue{byAction: make(map[*Action][]*envelope)}
}

// add folds input into the first envelope of the same action whose merge
// succeeds, or appends a new envelope. It reports whether a merge happened.
func (q *deferredQueue) add(a *Action, input any) bool {
	if a.merge != nil {
		for _, env := range q.byAction[a] {
			if merged, ok := a.merge(input, env.input); ok {
				env.input = merged
				return true
			}
		}
	}

	env := &envelope{action: a, input: input}
	q.order = append(q.order, env)
	q.byAction[a] = append(q.byAction[a], env)
	return false
}

// drain empties the queue and returns its envelopes in registration order.
func (q *deferredQueue) drain() []*envelope {
	out := q.order
	q.order = nil
	clear(q.byAction)
	return out
}

func (q *deferredQueue) len() int {
	return len(q.order)
}
