package client

import (
	"context"

	"github.com/leofalp/aistream/providers/ai"
)

// StreamCall is one resolved Stream request as it travels through the
// middleware chain. Spec.Model is always set.
type StreamCall struct {
	Provider  ai.ProviderID
	Spec      ai.RequestSpec
	SessionID string

	dialect ai.Dialect
	apiKey  string
}

// StreamFunc runs a StreamCall, delivering events to sink. The innermost
// StreamFunc is the session engine.
type StreamFunc func(ctx context.Context, call StreamCall, sink ai.Sink) error

// StreamMiddleware wraps a StreamFunc. A middleware may reject the call by
// returning an error without calling next; the client then delivers the
// failure terminal event on its behalf. It may also wrap sink to observe the
// event sequence, but it must forward every event it receives.
type StreamMiddleware func(next StreamFunc) StreamFunc

// buildStreamChain wraps base so that middlewares[0] runs first.
func buildStreamChain(base StreamFunc, middlewares []StreamMiddleware) StreamFunc {
	chain := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}
	return chain
}
