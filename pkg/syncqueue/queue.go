// Package syncqueue provides a bounded blocking FIFO queue with a
// stop/start lifecycle.
//
// The queue is the hand-off point between producer and consumer
// goroutines: Put blocks while the queue is full, Take blocks while it is
// empty, and Stop releases every blocked waiter so that shutdown never
// hangs. Capacity and emptiness are expressed as blocking or boolean
// outcomes rather than errors.
package syncqueue

import "sync"

// DefaultMaxSize is the capacity used when a queue is created with a
// non-positive maximum size.
const DefaultMaxSize = 100

// Queue is a bounded blocking FIFO queue.
//
// One mutex guards all state; two condition variables (notFull, notEmpty)
// carry the wakeups. While the queue is running, 0 <= Len() <= MaxSize()
// holds at every point a caller can observe. While the queue is stopped no
// operation blocks: Put drops the item and reports false, Take still
// drains remaining items and reports false once the queue is empty.
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	items    []T
	maxSize  int
	stopped  bool
}

// New creates a running queue bounded to maxSize items. A non-positive
// maxSize falls back to DefaultMaxSize.
func New[T any](maxSize int) *Queue[T] {
	if maxSize < 1 {
		maxSize = DefaultMaxSize
	}
	q := &Queue[T]{maxSize: maxSize}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Put appends item to the tail, waiting while the queue is full. It
// reports false without inserting when the queue is (or becomes) stopped:
// the item is dropped, which keeps producers live during shutdown. On
// success it wakes one waiting consumer.
func (q *Queue[T]) Put(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for !q.stopped && len(q.items) >= q.maxSize {
		q.notFull.Wait()
	}
	if q.stopped {
		return false
	}
	q.items = append(q.items, item)
	q.notEmpty.Signal()
	return true
}

// Take removes and returns the head of the queue, waiting while the queue
// is empty. A stopped queue still yields its remaining items; Take reports
// false only once the queue is stopped and drained. On success it wakes
// one waiting producer.
func (q *Queue[T]) Take() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for !q.stopped && len(q.items) == 0 {
		q.notEmpty.Wait()
	}
	return q.popLocked()
}

// TryTake is the non-blocking form of Take: it reports false immediately
// when the queue is empty.
func (q *Queue[T]) TryTake() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

func (q *Queue[T]) popLocked() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	q.notFull.Signal()
	return item, true
}

// TakeAll removes and returns every queued item in FIFO order, waiting
// while the queue is empty. Wait semantics match Take. Because the whole
// sequence moves out at once, every waiting producer is woken.
func (q *Queue[T]) TakeAll() ([]T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for !q.stopped && len(q.items) == 0 {
		q.notEmpty.Wait()
	}
	return q.drainLocked()
}

// TryTakeAll is the non-blocking form of TakeAll.
func (q *Queue[T]) TryTakeAll() ([]T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.drainLocked()
}

func (q *Queue[T]) drainLocked() ([]T, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	out := q.items
	q.items = nil
	q.notFull.Broadcast()
	return out, true
}

// Stop marks the queue stopped and wakes every blocked producer and
// consumer so none hangs. It is idempotent and safe to call concurrently
// from multiple goroutines; only the first call transitions the state.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	q.stopped = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Start reverses Stop, permitting blocking calls again. It is a no-op on a
// running queue; a queue may cycle Stop and Start indefinitely.
func (q *Queue[T]) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = false
}

// Stopped reports whether the queue is currently stopped.
func (q *Queue[T]) Stopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopped
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// IsFull reports whether the queue is at (or, after a SetMaxSize shrink,
// above) capacity.
func (q *Queue[T]) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) >= q.maxSize
}

// IsEmpty reports whether the queue holds no items.
func (q *Queue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// MaxSize returns the current capacity bound.
func (q *Queue[T]) MaxSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.maxSize
}

// SetMaxSize changes the capacity bound at runtime. Shrinking below the
// current length never evicts items; it only blocks future Puts until the
// length drops under the new bound. Waiting producers are woken so they
// re-check the bound when it grows.
func (q *Queue[T]) SetMaxSize(maxSize int) {
	if maxSize < 1 {
		maxSize = DefaultMaxSize
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.maxSize = maxSize
	q.notFull.Broadcast()
}

// Clear discards every queued item and wakes waiting producers.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	q.notFull.Broadcast()
}
