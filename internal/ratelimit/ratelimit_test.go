package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		stepsPerSecond float64
		want           float64
	}{
		{name: "unlimited_zero", stepsPerSecond: 0, want: 0},
		{name: "unlimited_negative", stepsPerSecond: -1, want: 0},
		{name: "one_per_second", stepsPerSecond: 1, want: 1},
		{name: "fractional", stepsPerSecond: 0.5, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := New(tt.stepsPerSecond).Limit(); got != tt.want {
				t.Errorf("Limit() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("unlimited_allows_all", func(t *testing.T) {
		limiter := New(0)
		for i := range 10 {
			if !limiter.Allow() {
				t.Errorf("unlimited limiter denied step %d", i)
			}
		}
	})

	t.Run("limited_denies_burst", func(t *testing.T) {
		limiter := New(1)
		if !limiter.Allow() {
			t.Error("first step should be allowed")
		}
		if limiter.Allow() {
			t.Error("second immediate step should be denied")
		}
	})
}

func TestLimiter_WaitCancelled(t *testing.T) {
	t.Parallel()

	limiter := New(1)
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("Wait() = nil, want error once the deadline cannot be met")
	}
}

func TestLimiter_SetLimit(t *testing.T) {
	t.Parallel()

	limiter := New(1)

	limiter.SetLimit(0)
	if limit := limiter.Limit(); limit != 0 {
		t.Errorf("after SetLimit(0), Limit() = %f, want 0", limit)
	}

	limiter.SetLimit(5)
	if limit := limiter.Limit(); limit != 5 {
		t.Errorf("after SetLimit(5), Limit() = %f, want 5", limit)
	}
}
