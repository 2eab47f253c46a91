// Package threadpool provides a fixed-size worker pool draining a bounded
// blocking queue of tasks.
//
// The pool is constructed running. Submit applies backpressure through the
// queue's blocking Put; ShutdownNow stops the queue, lets the workers
// drain what was already accepted and joins them before returning.
package threadpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	_ "go.uber.org/automaxprocs"

	"github.com/whichxjy/acht/pkg/syncqueue"
)

// DefaultMaxTasks is the task queue capacity used when none is given.
const DefaultMaxTasks = 100

// Config configures a Pool.
type Config struct {
	// Workers is the number of worker goroutines. Non-positive means
	// runtime.GOMAXPROCS(0).
	Workers int
	// MaxTasks bounds the task queue. Non-positive means DefaultMaxTasks.
	MaxTasks int
	// Logger receives task panic reports. Nil means a stderr logger.
	Logger Logger
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.GOMAXPROCS(0),
		MaxTasks: DefaultMaxTasks,
	}
}

// Stats is a snapshot of pool activity.
type Stats struct {
	QueuedTasks      int     // tasks waiting in the queue
	Workers          int     // worker goroutines in the current cycle
	CompletedTasks   int64   // tasks executed since construction
	RejectedTasks    int64   // tasks dropped because the pool was shut down
	QueueCapacity    int     // current queue bound
	QueueUtilization float64 // queued / capacity, in percent
}

// Pool is a fixed set of worker goroutines consuming one task queue.
//
// The shutdown flag is a compare-and-swap guard so the queue-stop
// transition happens exactly once per cycle; the mutex serializes Start
// and ShutdownNow so the worker set is never mutated from two goroutines
// at once.
type Pool struct {
	mu       sync.Mutex
	tasks    *syncqueue.Queue[Task]
	workers  int
	wg       sync.WaitGroup
	shutdown atomic.Bool
	logger   Logger

	completed atomic.Int64
	rejected  atomic.Int64
}

// New creates a Pool that is immediately running.
func New(cfg Config) *Pool {
	if cfg.Workers < 1 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxTasks < 1 {
		cfg.MaxTasks = DefaultMaxTasks
	}
	if cfg.Logger == nil {
		cfg.Logger = newDefaultLogger()
	}

	p := &Pool{
		tasks:  syncqueue.New[Task](cfg.MaxTasks),
		logger: cfg.Logger,
	}
	p.spawn(cfg.Workers)
	return p
}

func (p *Pool) spawn(n int) {
	p.workers = n
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}
}

// run is the worker loop. It exits when Take fails, which happens only
// once the queue is stopped and drained, so accepted tasks still execute
// during shutdown.
func (p *Pool) run() {
	defer p.wg.Done()
	for {
		task, ok := p.tasks.Take()
		if !ok {
			return
		}
		p.runTask(task)
		p.completed.Add(1)
	}
}

// runTask executes a task and keeps the worker alive if it panics.
func (p *Pool) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("threadpool: task %s panicked: %v", task.Name(), r)
		}
	}()
	task.Execute()
}

// Submit enqueues a task, blocking while the queue is full. It returns
// ErrPoolShutdown when the pool is shut down or shuts down while the
// caller is blocked; in both cases the task is dropped and will never run.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return errors.WithStack(ErrNilTask)
	}
	if p.shutdown.Load() {
		p.rejected.Add(1)
		return errors.WithStack(ErrPoolShutdown)
	}
	if !p.tasks.Put(task) {
		p.rejected.Add(1)
		return errors.WithStack(ErrPoolShutdown)
	}
	return nil
}

// ShutdownNow stops the task queue and joins every worker. It is
// idempotent, and a concurrent caller also waits for the join: when
// ShutdownNow returns, no worker goroutine is still running.
func (p *Pool) ShutdownNow() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown.CompareAndSwap(false, true) {
		p.tasks.Stop()
	}
	p.wg.Wait()
}

// Start restarts a shut-down pool with a new worker count and queue
// capacity. It returns ErrPoolRunning when the pool was not shut down.
func (p *Pool) Start(workers, maxTasks int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.shutdown.CompareAndSwap(true, false) {
		return errors.WithStack(ErrPoolRunning)
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if maxTasks < 1 {
		maxTasks = DefaultMaxTasks
	}
	p.tasks.Start()
	p.tasks.SetMaxSize(maxTasks)
	p.spawn(workers)
	return nil
}

// SetMaxTasks reconfigures the task queue capacity live. Shrinking below
// the number of queued tasks only delays future submissions; nothing is
// evicted.
func (p *Pool) SetMaxTasks(n int) {
	p.tasks.SetMaxSize(n)
}

// Workers returns the worker count of the current cycle.
func (p *Pool) Workers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.workers
}

// IsRunning reports whether the pool accepts tasks.
func (p *Pool) IsRunning() bool {
	return !p.shutdown.Load()
}

// Stats returns a snapshot of pool activity.
func (p *Pool) Stats() Stats {
	queued := p.tasks.Len()
	capacity := p.tasks.MaxSize()
	utilization := float64(queued) / float64(capacity) * 100.0
	if utilization > 100.0 {
		utilization = 100.0
	}

	return Stats{
		QueuedTasks:      queued,
		Workers:          p.Workers(),
		CompletedTasks:   p.completed.Load(),
		RejectedTasks:    p.rejected.Load(),
		QueueCapacity:    capacity,
		QueueUtilization: utilization,
	}
}
