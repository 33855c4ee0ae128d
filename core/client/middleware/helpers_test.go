package middleware

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/providers/ai"
)

// ========== Helpers ==========

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testCall(provider ai.ProviderID) client.StreamCall {
	return client.StreamCall{
		Provider:  provider,
		Spec:      ai.RequestSpec{Prompt: "what is the answer", Model: "m-1", MaxTokens: 32},
		SessionID: "01JTESTSESSION0000000000000",
	}
}

// streamOf returns a StreamFunc that emits the given chunks then a completed terminal event.
func streamOf(chunks ...string) client.StreamFunc {
	return func(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
		full := ""
		for _, chunk := range chunks {
			full += chunk
			sink(ai.SinkEvent{Chunk: chunk, Model: call.Spec.Model})
		}
		sink(ai.SinkEvent{Done: true, Model: call.Spec.Model, FullContent: full})
		return nil
	}
}

// failing returns a StreamFunc that delivers a failed terminal event and returns err.
func failing(err error) client.StreamFunc {
	return func(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
		sink(ai.SinkEvent{Done: true, Error: err.Error()})
		return err
	}
}

// blockUntilDone waits for ctx and reports it like the session does.
func blockUntilDone(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
	<-ctx.Done()
	err := &ai.TransportError{Message: "stream deadline exceeded", Err: ctx.Err()}
	sink(ai.SinkEvent{Done: true, Error: err.Error()})
	return err
}

func discard(ai.SinkEvent) {}
