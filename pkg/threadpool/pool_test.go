package threadpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// silentLogger swallows panic reports so expected panics do not pollute
// test output.
type silentLogger struct {
	calls atomic.Int64
}

func (l *silentLogger) Errorf(format string, args ...interface{}) {
	l.calls.Add(1)
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{})
	defer p.ShutdownNow()

	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
	if !p.IsRunning() {
		t.Error("IsRunning() = false on a new pool, want true")
	}
	if got := p.Stats().QueueCapacity; got != DefaultMaxTasks {
		t.Errorf("QueueCapacity = %d, want %d", got, DefaultMaxTasks)
	}
}

// TestPool_AllSubmittedTasksRun is the core shutdown barrier property:
// with 2 workers and a capacity-1 queue, five submitted tasks have all
// executed exactly once by the time ShutdownNow returns.
func TestPool_AllSubmittedTasksRun(t *testing.T) {
	p := New(Config{Workers: 2, MaxTasks: 1})

	var executed atomic.Int64
	for i := 0; i < 5; i++ {
		err := p.Submit(TaskFunc(func() {
			executed.Add(1)
		}))
		if err != nil {
			t.Fatalf("Submit() #%d error = %v", i, err)
		}
	}

	p.ShutdownNow()

	if got := executed.Load(); got != 5 {
		t.Errorf("executed %d tasks, want 5", got)
	}
}

func TestSubmit_AfterShutdown(t *testing.T) {
	p := New(Config{Workers: 1, MaxTasks: 10})
	p.ShutdownNow()

	err := p.Submit(TaskFunc(func() {}))
	if !errors.Is(err, ErrPoolShutdown) {
		t.Errorf("Submit() after shutdown error = %v, want ErrPoolShutdown", err)
	}
	if p.IsRunning() {
		t.Error("IsRunning() = true after ShutdownNow, want false")
	}
	if got := p.Stats().RejectedTasks; got != 1 {
		t.Errorf("RejectedTasks = %d, want 1", got)
	}
}

func TestSubmit_NilTask(t *testing.T) {
	p := New(Config{Workers: 1, MaxTasks: 10})
	defer p.ShutdownNow()

	if err := p.Submit(nil); !errors.Is(err, ErrNilTask) {
		t.Errorf("Submit(nil) error = %v, want ErrNilTask", err)
	}
}

func TestSubmit_BlockedCallerReleasedByShutdown(t *testing.T) {
	p := New(Config{Workers: 1, MaxTasks: 1})

	// Park the single worker and fill the queue so the next Submit blocks.
	block := make(chan struct{})
	p.Submit(TaskFunc(func() { <-block }))
	p.Submit(TaskFunc(func() {}))

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Submit(TaskFunc(func() {}))
	}()

	select {
	case err := <-errCh:
		t.Fatalf("Submit() should block on a full queue, got %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	// Shut down while the worker is still parked: stopping the queue must
	// release the blocked submitter with an error before the join finishes.
	shutdownDone := make(chan struct{})
	go func() {
		p.ShutdownNow()
		close(shutdownDone)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrPoolShutdown) {
			t.Errorf("blocked Submit() error = %v, want ErrPoolShutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for blocked Submit to release")
	}

	close(block)
	select {
	case <-shutdownDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ShutdownNow to join workers")
	}
}

func TestWorker_SurvivesTaskPanic(t *testing.T) {
	logger := &silentLogger{}
	p := New(Config{Workers: 1, MaxTasks: 10, Logger: logger})

	p.Submit(NewNamedTask("boom", func() {
		panic("kaboom")
	}))

	var executed atomic.Int64
	p.Submit(TaskFunc(func() {
		executed.Add(1)
	}))

	p.ShutdownNow()

	if got := executed.Load(); got != 1 {
		t.Errorf("task after panic executed %d times, want 1", got)
	}
	if logger.calls.Load() != 1 {
		t.Errorf("panic logged %d times, want 1", logger.calls.Load())
	}
}

func TestShutdownNow_Idempotent(t *testing.T) {
	p := New(Config{Workers: 2, MaxTasks: 4})
	p.ShutdownNow()
	p.ShutdownNow() // must be a safe no-op
}

func TestShutdownNow_ConcurrentCallers(t *testing.T) {
	p := New(Config{Workers: 4, MaxTasks: 8})

	var executed atomic.Int64
	for i := 0; i < 8; i++ {
		p.Submit(TaskFunc(func() {
			time.Sleep(10 * time.Millisecond)
			executed.Add(1)
		}))
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.ShutdownNow()
			// Every caller observes the barrier: all accepted tasks done.
			if got := executed.Load(); got != 8 {
				t.Errorf("after ShutdownNow executed = %d, want 8", got)
			}
		}()
	}
	wg.Wait()
}

func TestStart_AfterShutdown(t *testing.T) {
	p := New(Config{Workers: 2, MaxTasks: 4})

	if err := p.Start(3, 5); !errors.Is(err, ErrPoolRunning) {
		t.Errorf("Start() on a running pool error = %v, want ErrPoolRunning", err)
	}

	p.ShutdownNow()

	if err := p.Start(3, 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", p.Workers())
	}
	if got := p.Stats().QueueCapacity; got != 5 {
		t.Errorf("QueueCapacity = %d, want 5", got)
	}

	var executed atomic.Int64
	if err := p.Submit(TaskFunc(func() { executed.Add(1) })); err != nil {
		t.Fatalf("Submit() after restart error = %v", err)
	}
	p.ShutdownNow()

	if executed.Load() != 1 {
		t.Errorf("task after restart executed %d times, want 1", executed.Load())
	}
}

func TestSetMaxTasks(t *testing.T) {
	p := New(Config{Workers: 1, MaxTasks: 2})
	defer p.ShutdownNow()

	p.SetMaxTasks(9)
	if got := p.Stats().QueueCapacity; got != 9 {
		t.Errorf("QueueCapacity = %d, want 9", got)
	}
}

func TestStats_CompletedTasks(t *testing.T) {
	p := New(Config{Workers: 2, MaxTasks: 10})

	for i := 0; i < 5; i++ {
		p.Submit(TaskFunc(func() {}))
	}
	p.ShutdownNow()

	stats := p.Stats()
	if stats.CompletedTasks != 5 {
		t.Errorf("CompletedTasks = %d, want 5", stats.CompletedTasks)
	}
	if stats.QueuedTasks != 0 {
		t.Errorf("QueuedTasks = %d after shutdown, want 0", stats.QueuedTasks)
	}
	if stats.QueueUtilization != 0 {
		t.Errorf("QueueUtilization = %v after shutdown, want 0", stats.QueueUtilization)
	}
}

func BenchmarkPool_Submit(b *testing.B) {
	p := New(Config{Workers: 4, MaxTasks: 1 << 16})
	defer p.ShutdownNow()

	task := TaskFunc(func() {})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := p.Submit(task); err != nil {
				b.Error(err)
			}
		}
	})
}
