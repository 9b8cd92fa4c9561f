package resilience

import (
	"context"
	"time"
)

// Limiter admits calls. Acquire blocks until the call may proceed or ctx is
// done; the returned release must be called exactly once when the call ends.
type Limiter interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Config selects which limiters New builds. Zero values disable a limiter.
type Config struct {
	// MaxConcurrent caps calls in flight.
	MaxConcurrent int `mapstructure:"max_concurrent" yaml:"max_concurrent" validate:"gte=0"`
	// MaxWait bounds how long a call waits for a concurrency slot.
	MaxWait time.Duration `mapstructure:"max_wait" yaml:"max_wait" validate:"gte=0"`
	// Rate is the number of calls allowed per second.
	Rate float64 `mapstructure:"rate" yaml:"rate" validate:"gte=0"`
	// Burst is the token bucket size.
	Burst int `mapstructure:"burst" yaml:"burst" validate:"gte=0"`
}

// Enabled reports whether any limiter is configured.
func (c Config) Enabled() bool {
	return c.MaxConcurrent > 0 || c.Rate > 0
}

// New builds a Limiter from cfg. The rate limiter runs before the bulkhead so
// a call waiting on tokens does not hold a slot. Returns nil when nothing is
// configured.
func New(name string, cfg Config) Limiter {
	var limiters []Limiter
	if cfg.Rate > 0 {
		limiters = append(limiters, NewRateLimiter(RateLimiterConfig{
			Name:  name,
			Rate:  cfg.Rate,
			Burst: cfg.Burst,
		}))
	}
	if cfg.MaxConcurrent > 0 {
		limiters = append(limiters, NewBulkhead(BulkheadConfig{
			Name:          name,
			MaxConcurrent: cfg.MaxConcurrent,
			MaxWait:       cfg.MaxWait,
		}))
	}
	switch len(limiters) {
	case 0:
		return nil
	case 1:
		return limiters[0]
	default:
		return Chain(limiters...)
	}
}

// Chain acquires each limiter in order and releases them in reverse. If one
// fails, those already acquired are released.
func Chain(limiters ...Limiter) Limiter {
	return chain(limiters)
}

type chain []Limiter

func (c chain) Acquire(ctx context.Context) (func(), error) {
	releases := make([]func(), 0, len(c))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, l := range c {
		release, err := l.Acquire(ctx)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}

func noopRelease() {}
