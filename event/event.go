package event

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire-level wrapper delivered to a transport.
// It carries the event metadata plus the caller payload and is
// immutable once built.
type Envelope struct {
	// ID unique event identifier (UUID v4)
	ID string `json:"event_id"`

	// Type event type in "<domain>.<action>" form (e.g. "workout.created")
	Type string `json:"event_type"`

	// OrganizationID tenant the event belongs to
	OrganizationID string `json:"organization_id"`

	// Timestamp UTC instant captured at build time (publish-call time)
	Timestamp time.Time `json:"timestamp"`

	// Data opaque caller payload
	Data map[string]any `json:"data"`
}

// Builder assembles envelopes for publishing.
// Stateless apart from the clock, safe for concurrent use.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates an envelope builder using the system clock.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderWithClock creates a builder with a custom clock (for tests).
func NewBuilderWithClock(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// Build assembles an envelope with a fresh event id and a timestamp
// captured now. The timestamp reflects intent-to-publish, not delivery.
func (b *Builder) Build(eventType, organizationID string, data map[string]any) Envelope {
	return Envelope{
		ID:             uuid.NewString(),
		Type:           eventType,
		OrganizationID: organizationID,
		Timestamp:      b.now().UTC(),
		Data:           data,
	}
}
