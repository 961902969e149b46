package workflow

import (
	"context"
	"sync"
)

// Task is the handle of an asynchronous engine operation. It completes once.
type Task[T any] struct {
	done   chan struct{}
	once   sync.Once
	result T
	err    error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

func (t *Task[T]) complete(v T, err error) {
	t.once.Do(func() {
		t.result = v
		t.err = err
		close(t.done)
	})
}

// Done is closed when the task has completed.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task completes or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome without blocking. ok is false while the task
// is still running.
func (t *Task[T]) Result() (v T, err error, ok bool) {
	select {
	case <-t.done:
		return t.result, t.err, true
	default:
		return v, nil, false
	}
}
