// Package otelobs implements observability.Provider with OpenTelemetry
// tracing. Spans go to an OpenTelemetry TracerProvider; counters, histograms
// and log records are delegated to a fallback observer, usually slogobs.
package otelobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/leofalp/aistream/providers/observability"
)

const tracerName = "github.com/leofalp/aistream"

// Exporter names accepted by Setup.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// Setup builds a TracerProvider for the named exporter and returns it with its
// shutdown function. "stdout" pretty-prints finished spans to w (os.Stderr when
// nil); "none" or "" returns a no-op provider.
func Setup(exporter string, w io.Writer) (trace.TracerProvider, func(context.Context) error, error) {
	noopShutdown := func(context.Context) error { return nil }

	switch exporter {
	case "", ExporterNone:
		return noop.NewTracerProvider(), noopShutdown, nil
	case ExporterStdout:
		if w == nil {
			w = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		return tp, tp.Shutdown, nil
	default:
		return nil, nil, fmt.Errorf("unsupported trace exporter %q", exporter)
	}
}

// Observer sends spans to OpenTelemetry and everything else to fallback.
type Observer struct {
	tracer   trace.Tracer
	fallback observability.Provider
}

var _ observability.Provider = (*Observer)(nil)

// New wraps provider. fallback must not be nil.
func New(provider trace.TracerProvider, fallback observability.Provider) *Observer {
	if provider == nil {
		provider = noop.NewTracerProvider()
	}
	return &Observer{
		tracer:   provider.Tracer(tracerName),
		fallback: fallback,
	}
}

// StartSpan starts an OpenTelemetry span and stores the wrapper in the
// returned context.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	ctx, otelSpan := o.tracer.Start(ctx, name, trace.WithAttributes(toKeyValues(attrs)...))
	s := &span{span: otelSpan}
	return observability.ContextWithSpan(ctx, s), s
}

func (o *Observer) Counter(name string) observability.Counter {
	return o.fallback.Counter(name)
}

func (o *Observer) Histogram(name string) observability.Histogram {
	return o.fallback.Histogram(name)
}

func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Trace(ctx, msg, attrs...)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Debug(ctx, msg, attrs...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Info(ctx, msg, attrs...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Warn(ctx, msg, attrs...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.fallback.Error(ctx, msg, attrs...)
}

type span struct {
	span trace.Span
}

func (s *span) End() {
	s.span.End()
}

func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.span.SetAttributes(toKeyValues(attrs)...)
}

func (s *span) SetStatus(code observability.StatusCode, description string) {
	switch code {
	case observability.StatusOK:
		s.span.SetStatus(codes.Ok, "")
	case observability.StatusError:
		s.span.SetStatus(codes.Error, description)
	default:
		s.span.SetStatus(codes.Unset, "")
	}
}

func (s *span) RecordError(err error) {
	if err != nil {
		s.span.RecordError(err)
	}
}

func (s *span) AddEvent(name string, attrs ...observability.Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(toKeyValues(attrs)...))
}

func toKeyValues(attrs []observability.Attribute) []attribute.KeyValue {
	converted := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		converted = append(converted, toKeyValue(attr))
	}
	return converted
}

func toKeyValue(attr observability.Attribute) attribute.KeyValue {
	switch value := attr.Value.(type) {
	case string:
		return attribute.String(attr.Key, value)
	case int:
		return attribute.Int(attr.Key, value)
	case int64:
		return attribute.Int64(attr.Key, value)
	case float64:
		return attribute.Float64(attr.Key, value)
	case bool:
		return attribute.Bool(attr.Key, value)
	case time.Duration:
		return attribute.Int64(attr.Key+"_ms", value.Milliseconds())
	default:
		return attribute.String(attr.Key, fmt.Sprint(value))
	}
}
