// Package observability defines the facade the streaming engine reports
// through: tracing ([Tracer], [Span]), metrics ([Metrics]) and structured
// logging ([Logger]), composed into [Provider].
//
// A Client starts one span per Stream call and stores both the span and the
// observer in the context with [ContextWithSpan] and [ContextWithObserver],
// so lower layers (HTTP helpers, dialects) can enrich them. Attribute keys
// and metric names live in semconv.go.
//
// Implementations: slogobs (log/slog) and otelobs (OpenTelemetry tracing).
package observability
