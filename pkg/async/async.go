package async

import (
	"context"
	"sync"
	"time"
)

// Future is the read side of a single-shot asynchronous result.
// It settles exactly once, either with a value or with an error.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// settle records the outcome. Only the first call has any effect.
func (f *Future[U]) settle(v U, err error) bool {
	settled := false
	f.once.Do(func() {
		f.result = v
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Await blocks until the future settles and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext is like Await but gives up when ctx is done.
// Giving up does not settle the future.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the future for at most timeout.
// Returns ErrTimeout if it has not settled by then.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has settled, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the future settles.
func (f *Future[U]) Done() <-chan struct{} { return f.done }

// Deferred is the write side of a Future. Whoever holds it decides the outcome.
type Deferred[U any] struct {
	f *Future[U]
}

// NewDeferred returns a handle to a new unsettled future.
func NewDeferred[U any]() *Deferred[U] {
	return &Deferred[U]{f: newFuture[U]()}
}

// Future returns the read side.
func (d *Deferred[U]) Future() *Future[U] { return d.f }

// Resolve settles the future with v. It reports false if already settled.
func (d *Deferred[U]) Resolve(v U) bool {
	return d.f.settle(v, nil)
}

// Reject settles the future with err. A nil err is replaced by ErrNilRejection.
// It reports false if already settled.
func (d *Deferred[U]) Reject(err error) bool {
	if err == nil {
		err = ErrNilRejection
	}
	var zero U
	return d.f.settle(zero, err)
}

// Settled reports whether Resolve or Reject has taken effect.
func (d *Deferred[U]) Settled() bool { return d.f.IsComplete() }

// Resolved returns a future already settled with v.
func Resolved[U any](v U) *Future[U] {
	f := newFuture[U]()
	f.settle(v, nil)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[U any](err error) *Future[U] {
	d := NewDeferred[U]()
	d.Reject(err)
	return d.f
}

// Async executes fn in its own goroutine and returns its Future.
// A context canceled before fn starts settles the future with ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		select {
		case <-ctx.Done():
			var zero U
			f.settle(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.settle(res, err)
	}()

	return f
}
