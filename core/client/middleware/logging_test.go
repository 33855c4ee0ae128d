package middleware

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/providers/ai"
)

// TestLoggingMiddleware_Completed checks the start and completion entries at standard level.
func TestLoggingMiddleware_Completed(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(streamOf("a", "bc"))

	var events []ai.SinkEvent
	err := chain(context.Background(), testCall(ai.ProviderOpenAI), func(event ai.SinkEvent) {
		events = append(events, event)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events were not forwarded: %+v", events)
	}

	out := buf.String()
	for _, want := range []string{"llm stream", "llm stream completed", "provider=openai", "model=m-1", "chunks=2", "content_length=3", "history_count=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "prompt=") {
		t.Error("prompt must not be logged below verbose level")
	}
}

// TestLoggingMiddleware_Minimal checks that standard-only attributes are left out.
func TestLoggingMiddleware_Minimal(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelMinimal)(streamOf("x"))

	_ = chain(context.Background(), testCall(ai.ProviderGemini), discard)

	if strings.Contains(buf.String(), "chunks=") {
		t.Errorf("minimal level logged chunk count:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "duration=") {
		t.Errorf("duration missing:\n%s", buf.String())
	}
}

// TestLoggingMiddleware_Verbose checks prompt and content are logged.
func TestLoggingMiddleware_Verbose(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelVerbose)(streamOf("forty", "two"))

	_ = chain(context.Background(), testCall(ai.ProviderAnthropic), discard)

	out := buf.String()
	if !strings.Contains(out, `prompt="what is the answer"`) || !strings.Contains(out, "content=fortytwo") {
		t.Errorf("verbose attributes missing:\n%s", out)
	}
}

func TestLoggingMiddleware_Failed(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(failing(errors.New("http 503: overloaded")))

	err := chain(context.Background(), testCall(ai.ProviderOpenAI), discard)
	if err == nil {
		t.Fatal("error was swallowed")
	}
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "overloaded") {
		t.Errorf("failure not logged at error level:\n%s", buf.String())
	}
}

func TestLoggingMiddleware_Cancelled(t *testing.T) {
	buf := &bytes.Buffer{}
	cancelled := func(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
		sink(ai.SinkEvent{Done: true, Error: ai.CancelledMessage})
		return nil
	}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelMinimal)(cancelled)

	if err := chain(context.Background(), testCall(ai.ProviderOpenAI), discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "llm stream cancelled") {
		t.Errorf("cancellation not logged:\n%s", buf.String())
	}
}
