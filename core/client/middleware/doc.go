// Package middleware provides stream middlewares for the aistream client.
// Each constructor returns a [client.StreamMiddleware] ready to be passed to
// [client.WithMiddleware].
//
// # Available Middleware
//
//   - [NewTimeoutMiddleware]: bounds the whole call, connect to terminal event,
//     with context.WithTimeout. An expired deadline ends the session as failed.
//
//   - [NewCircuitBreaker]: one gobreaker circuit per provider. After enough
//     consecutive failures calls fail fast with ai.ErrCircuitOpen until the
//     breaker lets a probe call through. Calls are never retried.
//
//   - [NewRateLimit]: one token bucket per provider. Calls wait for a token or,
//     in fail-fast mode, are rejected with ai.ErrRateLimited.
//
//   - [NewLoggingMiddleware]: structured slog entries at call start and at the
//     terminal event, with three verbosity levels.
//
// # Usage
//
//	c, err := client.New(credentials,
//	    client.WithMiddleware(
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	        middleware.NewRateLimit(2, 4),
//	        middleware.NewCircuitBreaker(middleware.BreakerConfig{MaxFailures: 5}),
//	        middleware.NewTimeoutMiddleware(2*time.Minute),
//	    ),
//	)
//
// The first entry is the outermost wrapper. With the order above a rejected
// call is still logged, and the timeout starts only once the call has passed
// the limiter and the breaker.
package middleware
