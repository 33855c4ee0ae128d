package middleware

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/providers/ai"
)

// RateLimitOption configures NewRateLimit.
type RateLimitOption func(*rateLimiter)

// WithFailFast rejects a call immediately with ai.ErrRateLimited when no token
// is available, instead of waiting for one.
func WithFailFast() RateLimitOption {
	return func(l *rateLimiter) {
		l.failFast = true
	}
}

// NewRateLimit paces calls with one token bucket per provider, refilled at rps
// tokens per second and holding up to burst tokens. By default a call waits
// for a token; the wait ends early when ctx is done. A non-positive rps
// disables the middleware.
func NewRateLimit(rps float64, burst int, opts ...RateLimitOption) client.StreamMiddleware {
	if burst < 1 {
		burst = 1
	}
	limiter := &rateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		buckets: make(map[ai.ProviderID]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(limiter)
	}

	return func(next client.StreamFunc) client.StreamFunc {
		if rps <= 0 {
			return next
		}
		return func(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
			if err := limiter.take(ctx, call.Provider); err != nil {
				return err
			}
			return next(ctx, call, sink)
		}
	}
}

type rateLimiter struct {
	limit    rate.Limit
	burst    int
	failFast bool

	mu      sync.Mutex
	buckets map[ai.ProviderID]*rate.Limiter
}

func (l *rateLimiter) bucket(id ai.ProviderID) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[id]
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[id] = bucket
	}
	return bucket
}

func (l *rateLimiter) take(ctx context.Context, id ai.ProviderID) error {
	bucket := l.bucket(id)
	if l.failFast {
		if !bucket.Allow() {
			return fmt.Errorf("%w: provider %q", ai.ErrRateLimited, id)
		}
		return nil
	}

	if err := bucket.Wait(ctx); err != nil {
		// Cancellation while waiting stays a cancellation.
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return fmt.Errorf("%w: provider %q: %w", ai.ErrRateLimited, id, err)
	}
	return nil
}
