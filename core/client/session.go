package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/observability"
)

// readBufferSize is the size of each read from the response body.
const readBufferSize = 32 * 1024

// State is the lifecycle position of a stream session.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateStreaming  State = "streaming"
	StateFinalizing State = "finalizing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

func newSessionID() string {
	return ulid.Make().String()
}

// session is the state of one Stream call. It is owned by a single goroutine.
type session struct {
	id       string
	provider ai.ProviderID
	model    string
	dialect  ai.Dialect
	scanner  ai.FrameScanner
	sink     ai.Sink
	observer observability.Provider
	span     observability.Span
	timer    *utils.Timer

	state   State
	content strings.Builder
	chunks  int
	sawDone bool
}

// runSession is the innermost StreamFunc.
func (c *Client) runSession(ctx context.Context, call StreamCall, sink ai.Sink) (err error) {
	s := &session{
		id:       call.SessionID,
		provider: call.Provider,
		model:    call.Spec.Model,
		dialect:  call.dialect,
		scanner:  call.dialect.NewScanner(),
		sink:     sink,
		observer: c.observer,
		timer:    utils.NewTimer(),
		state:    StateIdle,
	}
	ctx = s.begin(ctx, call.Spec)

	defer func() {
		if recovered := recover(); recovered != nil {
			err = s.fail(ctx, fmt.Errorf("stream session panic: %v", recovered))
		}
		s.end(ctx, err)
	}()

	request, err := call.dialect.BuildRequest(call.Spec, call.apiKey)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.state = StateConnecting
	s.event(observability.EventLLMRequestStart,
		observability.String(observability.AttrLLMEndpoint, request.URL),
		observability.Int(observability.AttrHTTPRequestBodySize, len(request.Body)),
	)
	if err := ctx.Err(); err != nil {
		return s.stop(ctx, contextFailure(err))
	}

	response, err := utils.DoStream(ctx, c.httpClient, request)
	if err != nil {
		return s.stop(ctx, err)
	}
	defer utils.CloseWithLog(response.Body)

	// A read blocked on the network only returns once the body is closed.
	release := context.AfterFunc(ctx, func() {
		_ = response.Body.Close()
	})
	defer release()

	s.state = StateStreaming
	return s.read(ctx, response.Body)
}

// read is the Streaming and Finalizing part of the lifecycle.
func (s *session) read(ctx context.Context, body io.Reader) error {
	buffer := make([]byte, readBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return s.stop(ctx, contextFailure(err))
		}

		n, readErr := body.Read(buffer)
		if n > 0 {
			if err := s.handle(ctx, s.scanner.Feed(buffer[:n])); err != nil {
				return s.stop(ctx, err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			if err := ctx.Err(); err != nil {
				return s.stop(ctx, contextFailure(err))
			}
			return s.fail(ctx, &ai.TransportError{Message: "error reading stream", Err: readErr})
		}
	}

	s.state = StateFinalizing
	if buffered := s.scanner.Buffered(); buffered > 0 {
		s.event(observability.EventStreamFlush, observability.Int(observability.AttrStreamBufferedBytes, buffered))
	}
	// A failing trailing frame fails the session; fail keeps the content
	// already forwarded in FullContent.
	if err := s.handle(ctx, s.scanner.Flush()); err != nil {
		return s.stop(ctx, err)
	}
	return s.complete()
}

// handle classifies frames in order and forwards text. It returns the first
// error that ends the session.
func (s *session) handle(ctx context.Context, frames []string) error {
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return contextFailure(err)
		}
		if s.observer != nil {
			s.observer.Trace(ctx, "stream frame",
				observability.String(observability.AttrSessionID, s.id),
				observability.Int(observability.AttrFrameSize, len(frame)),
			)
		}

		event := s.dialect.Classify(frame)
		switch event.Kind {
		case ai.EventContent, ai.EventThinking:
			if err := s.forward(ctx, event); err != nil {
				return err
			}
		case ai.EventError:
			if event.Decode {
				s.scanner.Reset()
				return &ai.DecodeError{Frame: utils.TruncateString(frame, 200), Err: errors.New(event.Message)}
			}
			return &ai.ProviderError{Provider: s.provider, Message: event.Message}
		case ai.EventDone:
			s.sawDone = true
		}
	}
	return nil
}

func (s *session) forward(ctx context.Context, event ai.StreamEvent) error {
	if event.Text == "" {
		return nil
	}
	s.content.WriteString(event.Text)
	s.chunks++
	if s.chunks == 1 {
		s.event(observability.EventStreamFirstChunk)
	}
	return s.deliver(ai.SinkEvent{
		Chunk:    event.Text,
		Model:    s.model,
		Thinking: event.Kind == ai.EventThinking,
	})
}

// deliver calls the sink, converting a panic into an error.
func (s *session) deliver(event ai.SinkEvent) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("sink panicked: %v", recovered)
		}
	}()
	s.sink(event)
	return nil
}

func (s *session) complete() error {
	s.state = StateCompleted
	if err := s.deliver(ai.SinkEvent{
		Done:        true,
		Model:       s.model,
		FullContent: s.content.String(),
	}); err != nil {
		// The terminal event was already handed over, so no second one follows.
		s.state = StateFailed
		return err
	}
	return nil
}

// stop routes err to the Cancelled or Failed path.
func (s *session) stop(ctx context.Context, err error) error {
	if isCancellation(ctx, err) {
		return s.cancel()
	}
	return s.fail(ctx, err)
}

func (s *session) cancel() error {
	s.state = StateCancelled
	_ = s.deliver(ai.SinkEvent{
		Done:  true,
		Model: s.model,
		Error: ai.CancelledMessage,
	})
	return nil
}

func (s *session) fail(ctx context.Context, err error) error {
	if s.state == StateFailed {
		return err
	}
	s.state = StateFailed
	if deliverErr := s.deliver(ai.SinkEvent{
		Done:        true,
		Model:       s.model,
		Error:       failureMessage(err),
		FullContent: s.content.String(),
	}); deliverErr != nil {
		s.warn(ctx, "sink panicked on terminal event", deliverErr)
	}
	return err
}

// contextFailure maps a context error to the error the session reports. A
// deadline is a transport failure; cancellation passes through unchanged.
func contextFailure(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ai.TransportError{Message: "stream deadline exceeded", Err: err}
	}
	return err
}

func (s *session) begin(ctx context.Context, spec ai.RequestSpec) context.Context {
	if s.observer == nil {
		return ctx
	}
	ctx, s.span = s.observer.StartSpan(ctx, observability.SpanLLMStream,
		observability.String(observability.AttrLLMProvider, s.provider.String()),
		observability.String(observability.AttrLLMModel, s.model),
		observability.String(observability.AttrSessionID, s.id),
		observability.Bool(observability.AttrLLMStreaming, true),
		observability.Int(observability.AttrLLMMaxTokens, spec.MaxTokens),
		observability.Int(observability.AttrRequestHistoryCount, len(spec.History)),
	)
	return ctx
}

func (s *session) event(name string, attrs ...observability.Attribute) {
	if s.span != nil {
		s.span.AddEvent(name, attrs...)
	}
}

func (s *session) warn(ctx context.Context, msg string, err error) {
	if s.observer == nil {
		return
	}
	s.observer.Warn(ctx, msg,
		observability.String(observability.AttrSessionID, s.id),
		observability.Error(err),
	)
}

// end records the outcome on the span and metrics.
func (s *session) end(ctx context.Context, err error) {
	s.timer.Stop()
	if s.observer == nil {
		return
	}

	duration := s.timer.GetDuration()
	attrs := []observability.Attribute{
		observability.String(observability.AttrLLMProvider, s.provider.String()),
		observability.String(observability.AttrSessionState, string(s.state)),
	}

	switch s.state {
	case StateCompleted:
		s.observer.Counter(observability.MetricStreamCompleted).Add(ctx, 1, attrs...)
	case StateCancelled:
		s.observer.Counter(observability.MetricStreamCancelled).Add(ctx, 1, attrs...)
	default:
		s.observer.Counter(observability.MetricStreamFailed).Add(ctx, 1, attrs...)
	}
	s.observer.Histogram(observability.MetricStreamDuration).Record(ctx, float64(duration.Milliseconds()), attrs...)

	s.span.AddEvent(observability.EventStreamEnd, observability.String(observability.AttrSessionState, string(s.state)))
	s.span.SetAttributes(
		observability.String(observability.AttrSessionState, string(s.state)),
		observability.Int(observability.AttrStreamChunks, s.chunks),
		observability.Int(observability.AttrStreamContentLength, s.content.Len()),
		observability.Bool(observability.AttrStreamSawDone, s.sawDone),
		observability.Duration(observability.AttrDuration, duration),
	)
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(observability.StatusError, failureMessage(err))
	} else {
		s.span.SetStatus(observability.StatusOK, "")
	}
	s.span.End()

	s.observer.Debug(ctx, "stream session finished",
		observability.String(observability.AttrSessionID, s.id),
		observability.String(observability.AttrSessionState, string(s.state)),
		observability.Int(observability.AttrStreamChunks, s.chunks),
		observability.Duration(observability.AttrDuration, duration),
	)
}
