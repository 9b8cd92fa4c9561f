// Package resilience provides admission control for outgoing API calls.
//
// A Limiter gates each call before it reaches the transport:
//
//   - Bulkhead caps the number of calls in flight.
//   - RateLimiter spaces calls with a token bucket.
//
// Limiters compose with Chain and are built from configuration with New:
//
//	lim := resilience.New("petstore", resilience.Config{MaxConcurrent: 8, Rate: 50, Burst: 10})
//	release, err := lim.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer release()
package resilience
