package threadpool

import "github.com/google/uuid"

// Task is an opaque unit of work executed by a pool worker. It has no
// return value and no built-in failure channel: a task body is expected to
// handle its own errors, and a panic that escapes it is recovered and
// logged by the worker loop.
type Task interface {
	// Execute performs the task work.
	Execute()

	// Name returns a human-readable name for log lines.
	Name() string
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func()

// Execute implements Task.
func (f TaskFunc) Execute() {
	f()
}

// Name implements Task with a generic name.
func (f TaskFunc) Name() string {
	return "TaskFunc"
}

// NamedTask wraps a TaskFunc with a custom name and a unique ID so that
// individual submissions can be told apart in logs.
type NamedTask struct {
	id   string
	name string
	task TaskFunc
}

// NewNamedTask creates a NamedTask with a fresh ID.
func NewNamedTask(name string, task TaskFunc) *NamedTask {
	return &NamedTask{
		id:   uuid.NewString(),
		name: name,
		task: task,
	}
}

// Execute implements Task.
func (nt *NamedTask) Execute() {
	nt.task()
}

// Name returns the task name qualified by its ID.
func (nt *NamedTask) Name() string {
	return nt.name + "/" + nt.id
}

// ID returns the unique submission ID.
func (nt *NamedTask) ID() string {
	return nt.id
}
