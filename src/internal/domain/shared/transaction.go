package shared

import "context"

// TransactionContext is a marker for "the unit of work in progress".
//
// Repositories accept it on every method:
//   - the tx handed to fn by InTransaction: joins that transaction
//   - ReadOnly(ctx): auto-commit read bound to ctx
//   - nil: auto-commit read without a deadline (tests and startup)
//
// Writes must always run inside TransactionManager.InTransaction. The
// infrastructure layer implements it; domain and application code never
// see the concrete database handle.
type TransactionContext interface {
}

// ReadContext is the TransactionContext for an auto-commit read that
// still honours the caller's deadline and cancellation.
type ReadContext struct {
	ctx context.Context
}

// ReadOnly wraps ctx for reads outside a transaction.
func ReadOnly(ctx context.Context) TransactionContext {
	return ReadContext{ctx: ctx}
}

// Context returns the wrapped context, never nil.
func (r ReadContext) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// TransactionManager runs fn in a single store transaction. fn's error
// (or a panic) rolls everything back; a nil return commits. ctx bounds
// the whole transaction: cancelling it aborts and rolls back.
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(tx TransactionContext) error) error
}
