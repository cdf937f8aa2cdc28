// Package transporttest provides an in-memory Driver for tests and
// examples.
package transporttest

import (
	"context"
	"sync"
	"time"

	"github.com/fitviz/go-events/transport"
)

// Publication records one delivered message.
type Publication struct {
	Body    []byte
	Routing transport.Routing
}

// StubDriver implements transport.Driver in memory. Failures are
// scripted per call: each queued error is consumed by one call, and an
// empty queue means success. Safe for concurrent use so tests can
// hammer it from many goroutines.
type StubDriver struct {
	mu           sync.Mutex
	connectErrs  []error
	publishErrs  []error
	connectDelay time.Duration
	connectCalls int
	publishCalls int
	closeCalls   int
	published    []Publication
}

// NewStubDriver returns a driver that succeeds on every call until
// failures are scripted.
func NewStubDriver() *StubDriver {
	return &StubDriver{}
}

// FailConnect queues errors for the next Connect calls, one each.
func (d *StubDriver) FailConnect(errs ...error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectErrs = append(d.connectErrs, errs...)
}

// FailPublish queues errors for the next PublishRaw calls, one each.
func (d *StubDriver) FailPublish(errs ...error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.publishErrs = append(d.publishErrs, errs...)
}

// SetConnectDelay makes every Connect take at least the given time,
// exposing connect races.
func (d *StubDriver) SetConnectDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectDelay = delay
}

// Connect implements transport.Driver.
func (d *StubDriver) Connect(ctx context.Context) error {
	d.mu.Lock()
	d.connectCalls++
	delay := d.connectDelay
	var err error
	if len(d.connectErrs) > 0 {
		err = d.connectErrs[0]
		d.connectErrs = d.connectErrs[1:]
	}
	d.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return &transport.ConnError{Endpoint: "stub", Err: ctx.Err()}
		}
	}
	if err != nil {
		return &transport.ConnError{Endpoint: "stub", Err: err}
	}
	return nil
}

// PublishRaw implements transport.Driver.
func (d *StubDriver) PublishRaw(_ context.Context, body []byte, routing transport.Routing) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.publishCalls++
	if len(d.publishErrs) > 0 {
		err := d.publishErrs[0]
		d.publishErrs = d.publishErrs[1:]
		return &transport.PublishError{Err: err}
	}

	// Copy the body: callers may reuse buffers.
	bodyCopy := make([]byte, len(body))
	copy(bodyCopy, body)
	d.published = append(d.published, Publication{Body: bodyCopy, Routing: routing})
	return nil
}

// Close implements transport.Driver.
func (d *StubDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeCalls++
	return nil
}

// ConnectCalls reports how many times Connect ran.
func (d *StubDriver) ConnectCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connectCalls
}

// PublishCalls reports how many times PublishRaw ran.
func (d *StubDriver) PublishCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.publishCalls
}

// CloseCalls reports how many times Close ran.
func (d *StubDriver) CloseCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closeCalls
}

// Published returns a snapshot of everything delivered so far.
func (d *StubDriver) Published() []Publication {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Publication, len(d.published))
	copy(out, d.published)
	return out
}
