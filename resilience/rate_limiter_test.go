package resilience

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 1, Burst: 3})

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("expected call %d within burst to be allowed", i)
		}
	}
	if rl.Allow() {
		t.Error("expected call beyond burst to be limited")
	}
}

func TestRateLimiter_AcquireWaits(t *testing.T) {
	var limited atomic.Int32
	rl := NewRateLimiter(RateLimiterConfig{
		Name:    "test",
		Rate:    50,
		Burst:   1,
		OnLimit: func(string) { limited.Add(1) },
	})

	start := time.Now()
	for i := 0; i < 3; i++ {
		release, err := rl.Acquire(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		release()
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected calls to be spaced, took %v", elapsed)
	}
	if limited.Load() == 0 {
		t.Error("expected OnLimit to be called")
	}
}

func TestRateLimiter_AcquireCancelled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 0.1, Burst: 1})
	rl.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rl.Acquire(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test"})
	if rl.Rate() != 10 {
		t.Errorf("expected default rate 10, got %v", rl.Rate())
	}
	if rl.Burst() != 10 {
		t.Errorf("expected burst to default to rate, got %d", rl.Burst())
	}

	small := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 0.5})
	if small.Burst() != 1 {
		t.Errorf("expected minimum burst 1, got %d", small.Burst())
	}
	if small.Tokens() > 1 {
		t.Errorf("expected at most 1 token, got %v", small.Tokens())
	}
}
