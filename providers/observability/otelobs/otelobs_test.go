package otelobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/leofalp/aistream/providers/observability"
	"github.com/leofalp/aistream/providers/observability/slogobs"
)

func newRecordingObserver(t *testing.T) (*Observer, *tracetest.SpanRecorder, *slogobs.Observer) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	fallback := slogobs.New(slogobs.WithOutput(&bytes.Buffer{}))
	return New(provider, fallback), recorder, fallback
}

func TestObserver_SpanExported(t *testing.T) {
	observer, recorder, _ := newRecordingObserver(t)

	ctx, span := observer.StartSpan(context.Background(), observability.SpanLLMStream,
		observability.String(observability.AttrLLMProvider, "anthropic"))
	if observability.SpanFromContext(ctx) != span {
		t.Error("span not stored in context")
	}
	span.SetAttributes(observability.Int(observability.AttrStreamChunks, 4), observability.Duration("took", 1500*time.Millisecond))
	span.AddEvent(observability.EventStreamFirstChunk)
	span.RecordError(errors.New("overloaded"))
	span.SetStatus(observability.StatusError, "overloaded")
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	got := ended[0]
	if got.Name() != observability.SpanLLMStream {
		t.Errorf("name = %q", got.Name())
	}
	if got.Status().Code != codes.Error || got.Status().Description != "overloaded" {
		t.Errorf("status = %+v", got.Status())
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[observability.AttrLLMProvider].AsString() != "anthropic" {
		t.Errorf("provider attribute = %v", attrs[observability.AttrLLMProvider])
	}
	if attrs[observability.AttrStreamChunks].AsInt64() != 4 {
		t.Errorf("chunks attribute = %v", attrs[observability.AttrStreamChunks])
	}
	if attrs["took_ms"].AsInt64() != 1500 {
		t.Errorf("duration attribute = %v", attrs["took_ms"])
	}

	var names []string
	for _, event := range got.Events() {
		names = append(names, event.Name)
	}
	if !strings.Contains(strings.Join(names, ","), observability.EventStreamFirstChunk) {
		t.Errorf("events = %v", names)
	}
}

// TestObserver_MetricsDelegated checks counters land in the fallback observer.
func TestObserver_MetricsDelegated(t *testing.T) {
	observer, _, fallback := newRecordingObserver(t)

	observer.Counter(observability.MetricStreamFailed).Add(context.Background(), 2)

	if got := fallback.CounterValue(observability.MetricStreamFailed); got != 2 {
		t.Errorf("fallback counter = %d, want 2", got)
	}
}

func TestSetup(t *testing.T) {
	if _, shutdown, err := Setup("", nil); err != nil || shutdown(context.Background()) != nil {
		t.Errorf("Setup(none) failed: %v", err)
	}

	var buf bytes.Buffer
	provider, shutdown, err := Setup(ExporterStdout, &buf)
	if err != nil {
		t.Fatalf("Setup(stdout): %v", err)
	}
	_, span := New(provider, slogobs.New(slogobs.WithOutput(&bytes.Buffer{}))).StartSpan(context.Background(), "probe")
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !strings.Contains(buf.String(), `"Name": "probe"`) {
		t.Errorf("span not exported: %q", buf.String())
	}

	if _, _, err := Setup("jaeger", nil); err == nil {
		t.Error("expected an error for an unknown exporter")
	}
}
