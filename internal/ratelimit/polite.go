package ratelimit

import (
	"context"
	"math/rand/v2"
	"time"
)

// Jitter produces randomized politeness delays around a base duration.
type Jitter struct {
	Base  time.Duration
	Ratio float64 // Fraction of Base the delay may deviate by, e.g. 0.4

	// Rand returns a value in [0, 1). Defaults to math/rand/v2.
	Rand func() float64
}

// Delay returns Base × (1 + u × Ratio) with u uniform in [-1, 1), never negative.
func (j Jitter) Delay() time.Duration {
	if j.Base <= 0 {
		return 0
	}
	r := j.Rand
	if r == nil {
		r = rand.Float64
	}
	u := r()*2 - 1
	d := time.Duration(float64(j.Base) * (1 + u*j.Ratio))
	if d < 0 {
		return 0
	}
	return d
}

// Sleep waits for one Delay or until ctx is done.
func (j Jitter) Sleep(ctx context.Context) error {
	return sleepCtx(ctx, j.Delay())
}

// PoliteSleep sleeps base × (1 + U(-1,1) × jitter), returning early with the
// context error if ctx is cancelled.
func PoliteSleep(ctx context.Context, base time.Duration, jitter float64) error {
	return Jitter{Base: base, Ratio: jitter}.Sleep(ctx)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
