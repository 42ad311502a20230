// Package mockstub provides cancellable delayed tasks used to simulate the
// latency of network calls and model inference.
//
// A Task runs its function once its delay has elapsed. Cancelling a task
// before it completes guarantees that its result is never delivered: Wait
// returns ErrCancelled even if the function already started.
package mockstub

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCancelled is returned by Wait for a task stopped through Cancel.
var ErrCancelled = errors.New("mockstub: task cancelled")

// Task is a delayed computation producing a T.
type Task[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu        sync.Mutex
	finished  bool
	cancelled bool
	value     T
	err       error
}

// Start schedules fn to run after delay. The task is bound to ctx: when ctx
// is done before fn returns, the task fails with ctx's error.
func Start[T any](ctx context.Context, delay time.Duration, fn func(context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go t.run(ctx, delay, fn)
	return t
}

// Resolve schedules a task that yields value after delay.
func Resolve[T any](ctx context.Context, delay time.Duration, value T) *Task[T] {
	return Start(ctx, delay, func(context.Context) (T, error) {
		return value, nil
	})
}

func (t *Task[T]) run(ctx context.Context, delay time.Duration, fn func(context.Context) (T, error)) {
	defer t.cancel()

	var (
		value T
		err   error
	)

	timer := time.NewTimer(delay)
	select {
	case <-ctx.Done():
		timer.Stop()
		err = ctx.Err()
	case <-timer.C:
		value, err = fn(ctx)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
	}

	t.finish(value, err)
}

func (t *Task[T]) finish(value T, err error) {
	t.mu.Lock()
	if t.cancelled {
		var zero T
		value, err = zero, ErrCancelled
	} else if err != nil {
		var zero T
		value = zero
	}
	t.value, t.err = value, err
	t.finished = true
	t.mu.Unlock()

	close(t.done)
}

// Cancel stops the task. It reports whether the cancellation took effect;
// it has none once the task has already finished.
func (t *Task[T]) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return false
	}
	t.cancelled = true
	t.cancel()
	return true
}

// Done is closed once the task has a result.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is done. Giving up on the wait
// does not cancel the task.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.Result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome of a finished task, or ErrPending while it is
// still running.
func (t *Task[T]) Result() (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.finished {
		var zero T
		return zero, ErrPending
	}
	return t.value, t.err
}

// ErrPending is returned by Result while the task is still running.
var ErrPending = errors.New("mockstub: task pending")
