package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fitviz/go-events/retry"
	"go.uber.org/zap"
)

// State of the managed connection. Mutated only while holding the
// manager's mutex.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateFailed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Manager owns at most one live driver connection per publisher and
// serializes connect, reconnect and publish under a single mutex. Only
// one goroutine ever performs a physical connect; concurrent callers
// block until the attempt resolves and then share the connection (or
// observe the same failure).
type Manager struct {
	mu             sync.Mutex
	driver         Driver
	state          State
	policy         retry.Policy
	connectTimeout time.Duration
	logger         *zap.Logger
}

// NewManager wraps the driver. connectTimeout bounds each individual
// connect attempt; the policy bounds the connect retry loop.
func NewManager(driver Driver, policy retry.Policy, connectTimeout time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		driver:         driver,
		state:          StateDisconnected,
		policy:         policy,
		connectTimeout: connectTimeout,
		logger:         logger,
	}
}

// Exec runs fn against the live driver while holding the connection
// mutex, connecting first if needed. Connect failures are retried per
// the policy; exhaustion transitions the state to failed and returns a
// *ConnError. Errors returned by fn pass through untouched.
func (m *Manager) Exec(ctx context.Context, fn func(Driver) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureConnected(ctx); err != nil {
		return err
	}
	return fn(m.driver)
}

// MarkFailed records a publish-reported transport failure: the stale
// connection is dropped and the next Exec reconnects lazily.
func (m *Manager) MarkFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateConnected {
		if err := m.driver.Close(); err != nil {
			m.logger.Warn("closing failed connection", zap.Error(err))
		}
	}
	m.state = StateDisconnected
}

// Close shuts the connection down. Idempotent; safe before any
// connect and safe to call repeatedly.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateConnected {
		if err := m.driver.Close(); err != nil {
			m.logger.Warn("closing connection", zap.Error(err))
		}
	}
	m.state = StateDisconnected
}

// State reports the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ensureConnected drives Disconnected/Failed -> Connecting ->
// Connected, retrying per the policy. Caller must hold the mutex.
func (m *Manager) ensureConnected(ctx context.Context) error {
	if m.state == StateConnected {
		return nil
	}

	m.state = StateConnecting

	var delay time.Duration
	for attempt := 1; ; attempt++ {
		err := m.connectOnce(ctx)
		if err == nil {
			m.state = StateConnected
			m.logger.Info("transport connected", zap.Int("attempt", attempt))
			return nil
		}

		m.logger.Warn("connect attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", m.policy.MaxAttempts),
			zap.Error(err))

		decision := m.policy.Next(attempt, delay)
		if !decision.Retry {
			m.state = StateFailed
			var cerr *ConnError
			if errors.As(err, &cerr) {
				return err
			}
			return &ConnError{Err: err}
		}
		delay = decision.Delay

		if werr := retry.Wait(ctx, delay); werr != nil {
			m.state = StateFailed
			return &ConnError{Err: werr}
		}
	}
}

// connectOnce performs one bounded connect attempt.
func (m *Manager) connectOnce(ctx context.Context) error {
	if m.connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.connectTimeout)
		defer cancel()
	}
	return m.driver.Connect(ctx)
}
