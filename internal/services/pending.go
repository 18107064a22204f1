package services

import "context"

// Pending is the handle of a task API call that is still in flight.
// It settles exactly once, to either a value or an error.
type Pending[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn on its own goroutine and returns its handle immediately
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.value, p.err = fn(ctx)
	}()
	return p
}

// Done is closed once the call has settled
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the call settles or ctx is done, whichever comes first.
// Giving up on ctx does not cancel the call itself.
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
