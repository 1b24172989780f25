// Package operation implements the unit of work that runs one business
// request: an ordered pipeline of actions, the transactional commit or
// rollback around it, a queue of deferred follow-up actions, and buffers of
// tasks and notices flushed to their collaborators once the work is done.
//
// An Operation is created per request and executed once:
//
//	op, err := operation.New(operation.Config{
//	    ID:      requestID,
//	    Name:    "cache.invalidate",
//	    Origin:  "http",
//	    Actions: []*operation.Action{loadUser, saveUser},
//	}, operation.WithServices(operation.Services{Dao: dao, Cache: cache}))
//
//	result, err := op.Execute(ctx, input)
//
// Lifecycle:
//
//	initialized → started → sealed → closed
//
// Start marks the operation as running. Seal commits the Dao and closes the
// deferred queue. Close runs the deferred actions concurrently and then
// flushes buffered notices (one batch per target) and tasks (one batch),
// also concurrently. A pipeline failure takes the Abort path instead: the
// Dao is rolled back and the operation closes without running deferred
// actions or flushing.
//
// Actions receive the Operation explicitly and use it to run sub-actions,
// defer work, and register notices and tasks:
//
//	save := operation.Func("save-user", func(ctx context.Context, op *operation.Operation, u User) (User, error) {
//	    if err := op.Defer(actions.ClearCache, actions.Keys("user:"+u.ID)); err != nil {
//	        return User{}, err
//	    }
//	    return u, op.Notify(ctx, "users", domain.Notice{Event: "updated"}, false)
//	})
//
// Registration methods are safe to call from deferred actions running in
// parallel.
package operation
