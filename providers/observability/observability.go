package observability

import (
	"context"
	"time"
)

// Provider is everything a Client reports to during a stream session or a
// credential probe. slogobs and otelobs implement it.
type Provider interface {
	Tracer
	Metrics
	Logger
}

// Tracer opens one span per session or probe.
type Tracer interface {
	StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span follows one session from connect to its terminal event. Implementations
// must tolerate End being called once and nothing after it.
type Span interface {
	End()
	SetAttributes(attrs ...Attribute)
	SetStatus(code StatusCode, description string)
	RecordError(err error)
	AddEvent(name string, attrs ...Attribute)
}

// StatusCode is the outcome recorded on a span. The values match the
// OpenTelemetry codes so backends can convert them directly.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// Metrics hands out named instruments. Asking twice for the same name returns
// the same instrument.
type Metrics interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Counter only goes up; sessions add 1 per terminal state.
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram records observations such as session durations.
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// Logger is leveled structured logging. Trace sits below Debug and is used
// for per-frame records.
type Logger interface {
	Trace(ctx context.Context, msg string, attrs ...Attribute)
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// Attribute is one key/value pair attached to a span, an event, a metric
// point or a log record. Backends switch on the dynamic type of Value.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

func Int(key string, value int) Attribute { return Attribute{Key: key, Value: value} }

func Int64(key string, value int64) Attribute { return Attribute{Key: key, Value: value} }

func Float64(key string, value float64) Attribute { return Attribute{Key: key, Value: value} }

func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }

// Duration keeps the time.Duration type; otelobs exports it in milliseconds
// under key + "_ms".
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error stores err's message under AttrError. A nil error gives an empty
// message.
func Error(err error) Attribute {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return Attribute{Key: AttrError, Value: message}
}
