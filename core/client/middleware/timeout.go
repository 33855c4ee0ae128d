package middleware

import (
	"context"
	"time"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/providers/ai"
)

// NewTimeoutMiddleware puts a deadline of timeout on the whole call. The
// session observes it between reads, and the body is closed as soon as it
// fires, so a stalled provider ends the stream as a failed TransportError
// rather than a cancellation. A shorter deadline already on the caller's
// context wins. A non-positive timeout disables the middleware.
func NewTimeoutMiddleware(timeout time.Duration) client.StreamMiddleware {
	return func(next client.StreamFunc) client.StreamFunc {
		if timeout <= 0 {
			return next
		}
		return func(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, call, sink)
		}
	}
}
