package publisher

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigError reports invalid or missing configuration at construction
// time. It is fatal and never retried.
type ConfigError struct {
	// Fields field name -> violation description
	Fields map[string]string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid publisher configuration"
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("invalid publisher configuration:")
	for _, name := range names {
		fmt.Fprintf(&b, " %s: %s;", name, e.Fields[name])
	}
	return strings.TrimSuffix(b.String(), ";")
}
