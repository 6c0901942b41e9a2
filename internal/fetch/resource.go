package fetch

import (
	"context"
	"sync"
)

// Resource binds a fetch function to a lifetime. Results that arrive after
// Close, or after a newer Load has started, are discarded.
type Resource[T any] struct {
	fn func(context.Context) (T, error)

	mu     sync.Mutex
	state  State[T]
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

// NewResource creates an idle resource.
func NewResource[T any](fn func(context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{fn: fn}
}

// State returns the current snapshot.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Load fetches synchronously and returns the resulting state. If the resource
// was closed or superseded while the request was in flight, the returned
// state is the one the resource currently holds.
func (r *Resource[T]) Load(ctx context.Context) State[T] {
	ctx, gen, ok := r.begin(ctx)
	if !ok {
		return r.State()
	}
	v, err := r.fn(ctx)
	return r.finish(gen, v, err)
}

// Start fetches in a new goroutine. The returned channel is closed once the
// fetch has finished or been discarded.
func (r *Resource[T]) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	ctx, gen, ok := r.begin(ctx)
	if !ok {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		v, err := r.fn(ctx)
		r.finish(gen, v, err)
	}()
	return done
}

// Close tears down the resource scope and cancels any in-flight request.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Closed reports whether Close has been called.
func (r *Resource[T]) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Resource[T]) begin(parent context.Context) (context.Context, uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, 0, false
	}
	// One outstanding request per resource.
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.gen++
	r.state = State[T]{Status: StatusLoading, Data: r.state.Data}
	return ctx, r.gen, true
}

func (r *Resource[T]) finish(gen uint64, v T, err error) State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.gen {
		return r.state
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if err != nil {
		r.state = State[T]{Status: StatusError, Err: Classify(err)}
	} else {
		r.state = State[T]{Status: StatusSuccess, Data: &v}
	}
	return r.state
}
