package transport

import "fmt"

// ConnError reports a failure to establish the transport connection.
// The manager retries connects per its policy; an exhausted connect
// surfaces to the publisher as this error and degrades to a false
// publish result, never a panic or raised error.
type ConnError struct {
	// Endpoint the broker URL or topic identifier being connected to
	Endpoint string

	// Err the underlying driver error, from the last attempt
	Err error
}

// Error implements the error interface.
func (e *ConnError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("transport connect failed: %v", e.Err)
	}
	return fmt.Sprintf("transport connect to %s failed: %v", e.Endpoint, e.Err)
}

// Unwrap supports errors.Is / errors.As chains.
func (e *ConnError) Unwrap() error {
	return e.Err
}

// PublishError reports a failure during the send call itself. The
// publisher reacts by marking the connection failed and retrying the
// whole acquire-and-send cycle.
type PublishError struct {
	Err error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	return fmt.Sprintf("transport publish failed: %v", e.Err)
}

// Unwrap supports errors.Is / errors.As chains.
func (e *PublishError) Unwrap() error {
	return e.Err
}
