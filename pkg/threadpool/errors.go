package threadpool

import "errors"

var (
	// ErrNilTask is returned when Submit is called with a nil task.
	ErrNilTask = errors.New("task is nil")
	// ErrPoolShutdown is returned when a task is submitted to a pool that
	// is shutting down or shut down. The task is dropped and will never
	// run, matching the drop-on-stop semantics of the underlying queue.
	ErrPoolShutdown = errors.New("pool is shut down")
	// ErrPoolRunning is returned when Start is called on a running pool.
	ErrPoolRunning = errors.New("pool is already running")
)
