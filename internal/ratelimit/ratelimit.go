// Package ratelimit throttles scenario step execution.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New returns a limiter admitting stepsPerSecond steps, with a burst of one.
// A zero or negative rate disables throttling.
func New(stepsPerSecond float64) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(toLimit(stepsPerSecond), 1)}
}

// Wait blocks until the next step may run or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow is non-blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

func (l *Limiter) SetLimit(stepsPerSecond float64) {
	l.limiter.SetLimit(toLimit(stepsPerSecond))
}

// Limit reports the configured rate, 0 meaning unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}

func toLimit(stepsPerSecond float64) rate.Limit {
	if stepsPerSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(stepsPerSecond)
}
