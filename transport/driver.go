// Package transport defines the driver contract shared by the AMQP and
// SNS backends and the connection manager that guards the single live
// driver instance.
package transport

import "context"

// Routing carries the per-message addressing a driver may need. The
// broker variant uses Key as the exchange routing key; the cloud
// variant attaches Attributes for subscription-side filtering. Each
// driver reads only the part relevant to it; the destination itself
// (exchange name, topic ARN) is driver configuration.
type Routing struct {
	// Key broker routing key, equal to the event type
	Key string

	// Attributes message attributes for topic subscribers
	Attributes map[string]string
}

// Driver is a transport backend. Implementations are not required to
// be safe for concurrent use: the connection manager serializes all
// calls through one mutex.
type Driver interface {
	// Connect establishes the physical connection. Called again after
	// a failure transition; implementations must support reconnecting
	// on a previously failed instance.
	Connect(ctx context.Context) error

	// PublishRaw delivers one serialized envelope. Failures are
	// reported as *PublishError so the caller can reconnect and retry.
	PublishRaw(ctx context.Context, body []byte, routing Routing) error

	// Close releases the connection. Must be idempotent and tolerate
	// never having connected.
	Close() error
}
