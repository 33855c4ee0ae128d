package client

import (
	"context"
	"errors"
	"sync"

	"github.com/leofalp/aistream/providers/ai"
)

// terminalGuard sits between the chain and the caller's sink. It drops
// anything sent after the first terminal event and, when the chain returns
// without having sent one, sends it from the returned error.
type terminalGuard struct {
	sink  ai.Sink
	model string

	mu     sync.Mutex
	closed bool
}

func newTerminalGuard(sink ai.Sink, model string) *terminalGuard {
	return &terminalGuard{sink: sink, model: model}
}

func (g *terminalGuard) emit(event ai.SinkEvent) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	if event.Done {
		g.closed = true
	}
	g.mu.Unlock()

	g.sink(event)
}

func (g *terminalGuard) delivered() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// finish turns the chain result into the value Stream returns, sending the
// terminal event first if nobody did.
func (g *terminalGuard) finish(ctx context.Context, err error) error {
	cancelled := isCancellation(ctx, err)

	if !g.delivered() {
		event := ai.SinkEvent{Done: true, Model: g.model}
		switch {
		case cancelled:
			event.Error = ai.CancelledMessage
		case err != nil:
			event.Error = failureMessage(err)
		}
		g.emit(event)
	}

	if cancelled {
		return nil
	}
	return err
}

// isCancellation reports whether err (or a nil error on a cancelled context)
// means the caller gave up. A deadline is a failure, not a cancellation.
func isCancellation(ctx context.Context, err error) bool {
	if errors.Is(err, ai.ErrCancelled) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	return err == nil && errors.Is(ctx.Err(), context.Canceled)
}

// failureMessage is the text placed in the terminal event's Error field.
func failureMessage(err error) string {
	var providerErr *ai.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Message
	}
	return err.Error()
}
