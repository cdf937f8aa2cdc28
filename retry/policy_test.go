package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Next_DelaySequence(t *testing.T) {
	p := Policy{MaxAttempts: 3, InitialDelay: 100 * time.Millisecond, Multiplier: 2.0}

	d1 := p.Next(1, 0)
	assert.True(t, d1.Retry)
	assert.Equal(t, 100*time.Millisecond, d1.Delay)

	d2 := p.Next(2, d1.Delay)
	assert.True(t, d2.Retry)
	assert.Equal(t, 200*time.Millisecond, d2.Delay)

	d3 := p.Next(3, d2.Delay)
	assert.False(t, d3.Retry)
	assert.Equal(t, time.Duration(0), d3.Delay)
}

func TestPolicy_Next_SingleAttempt(t *testing.T) {
	p := Policy{MaxAttempts: 1, InitialDelay: time.Second, Multiplier: 2.0}

	assert.False(t, p.Next(1, 0).Retry)
}

func TestPolicy_Next_ZeroAttempts(t *testing.T) {
	p := Policy{MaxAttempts: 0}

	assert.False(t, p.Next(1, 0).Retry)
}

func TestPolicy_Next_MultiplierBelowOneNormalized(t *testing.T) {
	p := Policy{MaxAttempts: 4, InitialDelay: 50 * time.Millisecond, Multiplier: 0.5}

	d1 := p.Next(1, 0)
	d2 := p.Next(2, d1.Delay)

	// A multiplier below one must never shrink the delay.
	assert.Equal(t, 50*time.Millisecond, d1.Delay)
	assert.Equal(t, 50*time.Millisecond, d2.Delay)
}

func TestWait_Elapses(t *testing.T) {
	start := time.Now()
	err := Wait(context.Background(), 20*time.Millisecond)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Wait(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWait_ZeroDelay(t *testing.T) {
	assert.NoError(t, Wait(context.Background(), 0))
}
