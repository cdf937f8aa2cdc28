// Package publisher is the event-publishing core: it resolves the
// organization id, validates the payload, wraps it in the wire
// envelope and delivers it through the managed transport connection
// with bounded retry.
//
// Connectivity problems degrade to a false result so the calling
// application's primary logic is never interrupted by a messaging
// outage; only caller bugs (bad configuration, invalid payloads)
// surface as errors.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fitviz/go-events/event"
	"github.com/fitviz/go-events/retry"
	"github.com/fitviz/go-events/schema"
	"github.com/fitviz/go-events/transport"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Publisher delivers domain events to one transport backend. A single
// instance is shared by many caller goroutines; construct it once and
// inject it, never resolve it from global state.
type Publisher struct {
	cfg       Config
	manager   *transport.Manager
	builder   *event.Builder
	policy    retry.Policy
	resolver  event.Resolver
	validator schema.Validator
	pool      *ants.Pool
	logger    *zap.Logger
	closed    atomic.Bool
}

// New builds a publisher over the given driver. The zero Config gets
// sensible defaults; invalid values return a *ConfigError.
func New(cfg Config, driver transport.Driver, opts ...Option) (*Publisher, error) {
	if driver == nil {
		return nil, &ConfigError{Fields: map[string]string{"driver": "cannot be nil"}}
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Publisher{
		cfg:     cfg,
		builder: event.NewBuilder(),
		policy: retry.Policy{
			MaxAttempts:  cfg.RetryAttempts,
			InitialDelay: cfg.RetryDelay,
			Multiplier:   cfg.BackoffFactor,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.manager = transport.NewManager(driver, p.policy, cfg.ConnectTimeout, p.logger)

	pool, err := ants.NewPool(cfg.AsyncWorkers)
	if err != nil {
		return nil, &ConfigError{Fields: map[string]string{"async_workers": err.Error()}}
	}
	p.pool = pool

	return p, nil
}

// Publish delivers one event synchronously. It returns (true, nil) on
// success and (false, nil) when the transport stayed unreachable after
// all retries. The error is non-nil only for caller bugs: a payload
// failing validation or a missing organization id while validation is
// enabled, both reported as *schema.ValidationError before any
// connection activity.
func (p *Publisher) Publish(ctx context.Context, eventType string, data map[string]any, opts ...PublishOption) (bool, error) {
	if p.closed.Load() {
		p.logger.Warn("publisher is closed, cannot publish event",
			zap.String("event_type", eventType))
		return false, nil
	}

	var po publishOptions
	for _, opt := range opts {
		opt(&po)
	}

	orgID, err := p.resolveOrgID(eventType, po.orgID)
	if err != nil {
		return false, err
	}
	if orgID == "" {
		p.logger.Warn("no organization id available, skipping event publish",
			zap.String("event_type", eventType))
		return false, nil
	}

	if p.cfg.EnableValidation && p.validator != nil {
		if err := p.validator.Validate(eventType, data); err != nil {
			return false, err
		}
	}

	env := p.builder.Build(eventType, orgID, data)
	body, err := json.Marshal(env)
	if err != nil {
		return false, &schema.ValidationError{
			EventType: eventType,
			Fields:    map[string]string{"data": fmt.Sprintf("not serializable: %v", err)},
		}
	}

	routing := transport.Routing{
		Key: eventType,
		Attributes: map[string]string{
			"event_type":      eventType,
			"organization_id": orgID,
		},
	}

	if !p.dispatch(ctx, body, routing) {
		return false, nil
	}

	p.logger.Info("event published",
		zap.String("event_type", eventType),
		zap.String("event_id", env.ID),
		zap.String("organization_id", orgID))
	return true, nil
}

// dispatch runs the acquire-and-send cycle under the retry policy.
// Transport failures drop the connection and retry; a connect loop
// that already exhausted its own retries ends the cycle immediately.
func (p *Publisher) dispatch(ctx context.Context, body []byte, routing transport.Routing) bool {
	var delay time.Duration
	for attempt := 1; ; attempt++ {
		err := p.manager.Exec(ctx, func(d transport.Driver) error {
			return d.PublishRaw(ctx, body, routing)
		})
		if err == nil {
			return true
		}

		p.logger.Warn("publish attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.policy.MaxAttempts),
			zap.Error(err))

		var cerr *transport.ConnError
		if errors.As(err, &cerr) {
			// The connect loop already retried per policy.
			return false
		}

		p.manager.MarkFailed()

		decision := p.policy.Next(attempt, delay)
		if !decision.Retry {
			p.logger.Error("publish retries exhausted",
				zap.Int("attempts", attempt))
			return false
		}
		delay = decision.Delay

		if retry.Wait(ctx, delay) != nil {
			return false
		}
	}
}

// resolveOrgID applies the precedence rule: explicit call-site value,
// then the resolver, then failure (a ValidationError when validation
// is enabled, absence otherwise).
func (p *Publisher) resolveOrgID(eventType, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p.resolver != nil {
		if id, ok := p.resolver.Resolve(); ok {
			return id, nil
		}
	}
	if p.cfg.EnableValidation {
		return "", &schema.ValidationError{
			EventType: eventType,
			Fields:    map[string]string{"organization_id": "required but not resolved"},
		}
	}
	return "", nil
}

// State reports the transport connection state, for observability.
func (p *Publisher) State() transport.State {
	return p.manager.State()
}

// Close releases the worker pool and the transport connection.
// Idempotent, safe from any goroutine, and never returns an error.
func (p *Publisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.pool.Release()
	p.manager.Close()
	p.logger.Info("publisher closed")
	return nil
}
