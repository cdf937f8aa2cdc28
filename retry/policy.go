// Package retry provides the pure retry decision logic shared by the
// connect and publish loops. The policy never sleeps or touches the
// network itself; callers drive the loop and honor the decisions.
package retry

import (
	"context"
	"time"
)

// Policy bounds a retry loop: total attempt count, initial delay and the
// multiplicative growth applied after each failed attempt.
type Policy struct {
	// MaxAttempts total attempts, including the first (>= 1)
	MaxAttempts int

	// InitialDelay delay before the second attempt
	InitialDelay time.Duration

	// Multiplier growth factor applied per failed attempt (>= 1)
	Multiplier float64
}

// Decision is the outcome of consulting the policy after a failed attempt.
type Decision struct {
	// Retry whether another attempt should be made
	Retry bool

	// Delay how long to wait before the next attempt
	Delay time.Duration
}

// Next decides whether attempt number `attempt` (1-based) having failed,
// another attempt should follow. `prev` is the delay used before this
// attempt, zero on the first call; the next delay grows from it.
//
// Example: MaxAttempts=3, InitialDelay=100ms, Multiplier=2.0 yields
// delays 100ms, 200ms and then gives up.
func (p Policy) Next(attempt int, prev time.Duration) Decision {
	if attempt >= p.MaxAttempts {
		return Decision{}
	}

	delay := p.InitialDelay
	if prev > 0 {
		multiplier := p.Multiplier
		if multiplier < 1 {
			multiplier = 1
		}
		delay = time.Duration(float64(prev) * multiplier)
	}
	if delay < 0 {
		delay = 0
	}

	return Decision{Retry: true, Delay: delay}
}

// Wait blocks for the given delay or until the context is done,
// whichever comes first.
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
