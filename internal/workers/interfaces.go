// Package workers runs the background tasks of a client process: the storage
// file watcher and the per-tab cross-tab listeners. It also hosts the detached
// task runner used for best-effort side calls that must never affect the flow
// that started them.
package workers

import "context"

// Worker is a long-running background task.
//
// Run blocks until ctx is cancelled or the task fails. Returning nil after
// cancellation is the normal shutdown.
//
// Example implementation:
//
//	type Ticker struct{}
//
//	func (t *Ticker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
