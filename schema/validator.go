// Package schema validates event payloads against the catalog of known
// FitViz event types before they are handed to a transport.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Validator checks an event payload against the schema registered for
// its event type. Implementations must be safe for concurrent use.
type Validator interface {
	// Validate returns nil when the payload is acceptable and a
	// *ValidationError describing the violations otherwise.
	Validate(eventType string, data map[string]any) error
}

// ValidationError reports a payload that fails its event schema, or a
// publish call missing a required organization id. It marks a caller
// bug: it is never retried and never degrades to a boolean result.
type ValidationError struct {
	// EventType the event type being published
	EventType string

	// Fields field name -> violation description
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("event validation failed for %s", e.EventType)
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "event validation failed for %s:", e.EventType)
	for _, name := range names {
		fmt.Fprintf(&b, " %s: %s;", name, e.Fields[name])
	}
	return strings.TrimSuffix(b.String(), ";")
}
