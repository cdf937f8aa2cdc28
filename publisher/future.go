package publisher

import (
	"context"
	"errors"

	"github.com/panjf2000/ants/v2"
)

// Future resolves with the result of an asynchronous publish.
type Future struct {
	done chan struct{}
	ok   bool
	err  error
}

// Wait blocks until the publish finishes or the context is done. The
// returned values follow the Publish contract.
func (f *Future) Wait(ctx context.Context) (bool, error) {
	select {
	case <-f.done:
		return f.ok, f.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// PublishAsync runs the same blocking sequence as Publish on a worker
// so the caller's goroutine is free, and resolves the returned Future
// with the identical result. It adds no ordering guarantee: overlapping
// async calls are sent in whatever order they win the connection mutex.
func (p *Publisher) PublishAsync(ctx context.Context, eventType string, data map[string]any, opts ...PublishOption) *Future {
	f := &Future{done: make(chan struct{})}
	run := func() {
		f.ok, f.err = p.Publish(ctx, eventType, data, opts...)
		close(f.done)
	}

	if err := p.pool.Submit(run); err != nil {
		if !errors.Is(err, ants.ErrPoolClosed) {
			p.logger.Warn("worker pool refused task, running in own goroutine")
		}
		// Never drop the event: fall back to a plain goroutine. A
		// closed publisher still resolves the future (with false).
		go run()
	}
	return f
}
