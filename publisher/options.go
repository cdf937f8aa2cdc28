package publisher

import (
	"github.com/fitviz/go-events/event"
	"github.com/fitviz/go-events/schema"
	"go.uber.org/zap"
)

// Option configures a Publisher at construction.
type Option func(*Publisher)

// WithResolver supplies the organization-id resolver consulted when a
// publish call passes no explicit id.
func WithResolver(r event.Resolver) Option {
	return func(p *Publisher) {
		p.resolver = r
	}
}

// WithValidator supplies the payload validator. Without one, enabling
// validation only enforces organization-id presence.
func WithValidator(v schema.Validator) Option {
	return func(p *Publisher) {
		p.validator = v
	}
}

// WithLogger supplies the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// publishOptions per-call options.
type publishOptions struct {
	orgID string
}

// PublishOption configures a single publish call.
type PublishOption func(*publishOptions)

// WithOrgID pins the organization id for this call. An explicit id
// always wins over the resolver.
func WithOrgID(id string) PublishOption {
	return func(o *publishOptions) {
		o.orgID = id
	}
}
