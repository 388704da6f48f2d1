// Package ratelimit provides request pacing for the crawler using a token bucket
// algorithm plus jittered politeness delays.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultMaxWait bounds a single Acquire when no explicit limit is configured.
const DefaultMaxWait = time.Minute

// WaitTooLongError is returned when the wait for a token would exceed MaxWait.
type WaitTooLongError struct {
	Wait    time.Duration
	MaxWait time.Duration
}

func (e *WaitTooLongError) Error() string {
	return fmt.Sprintf("rate limit wait %s exceeds max %s", e.Wait, e.MaxWait)
}

// TokenBucket represents a token bucket rate limiter.
// It starts full; tokens refill continuously at refillRate per second up to capacity.
type TokenBucket struct {
	capacity   int           // Maximum tokens (burst capacity)
	refillRate float64       // Tokens per second
	maxWait    time.Duration // Upper bound for one Acquire wait
	tokens     float64       // Current tokens available
	lastRefill time.Time     // Last time tokens were refilled
	mu         sync.Mutex

	now func() time.Time
}

// NewTokenBucket creates a full bucket with the given capacity and refill rate.
// Non-positive values fall back to capacity 1 and rate 1/s.
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		maxWait:    DefaultMaxWait,
		tokens:     float64(capacity), // Start with full bucket
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// WithMaxWait sets the upper bound for a single Acquire wait and returns the bucket.
func (tb *TokenBucket) WithMaxWait(d time.Duration) *TokenBucket {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if d > 0 {
		tb.maxWait = d
	}
	return tb
}

// refill adds tokens for the time elapsed since the last refill. Caller holds mu.
func (tb *TokenBucket) refill() time.Time {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill)
	if elapsed > 0 {
		tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	}
	tb.lastRefill = now
	return now
}

// Acquire takes one token, waiting until one is available.
//
// The wait happens while the bucket's lock is held, so concurrent callers are
// served one at a time. After a wait the token balance is zero.
func (tb *TokenBucket) Acquire(ctx context.Context) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tb.refill()
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return nil
	}

	wait := time.Duration((1.0 - tb.tokens) / tb.refillRate * float64(time.Second))
	if tb.maxWait > 0 && wait > tb.maxWait {
		return &WaitTooLongError{Wait: wait, MaxWait: tb.maxWait}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	tb.refill()
	tb.tokens = 0
	return nil
}

// Status returns the whole tokens available and when the bucket will be full again.
func (tb *TokenBucket) Status() (remaining int, fullAt time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.refill()
	remaining = int(tb.tokens)
	if tb.tokens < float64(tb.capacity) {
		secondsUntilFull := (float64(tb.capacity) - tb.tokens) / tb.refillRate
		return remaining, now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return remaining, now
}
