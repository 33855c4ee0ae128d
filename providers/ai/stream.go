package ai

// EventKind identifies the canonical classification of one frame.
type EventKind string

const (
	// EventContent carries a text delta.
	EventContent EventKind = "content"
	// EventThinking carries a reasoning/thinking delta.
	EventThinking EventKind = "thinking"
	// EventError signals a provider-reported or decode failure. It is fatal to
	// the logical stream.
	EventError EventKind = "error"
	// EventDone is a soft end-of-message marker. It does not end the transport;
	// the read loop keeps going until the response body is exhausted.
	EventDone EventKind = "done"
	// EventIgnore marks a frame without actionable payload (role markers,
	// pings, signatures, finish-reason-only chunks).
	EventIgnore EventKind = "ignore"
)

// StreamEvent is the classification of a single frame. Exactly one of Text
// (content/thinking) or Message (error) is meaningful, depending on Kind.
type StreamEvent struct {
	Kind    EventKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Message string    `json:"message,omitempty"`

	// Decode is set when an error event comes from a frame that could not be
	// decoded, as opposed to an error the provider reported itself.
	Decode bool `json:"-"`
}

// Content returns a content event.
func Content(text string) StreamEvent {
	return StreamEvent{Kind: EventContent, Text: text}
}

// Thinking returns a thinking event.
func Thinking(text string) StreamEvent {
	return StreamEvent{Kind: EventThinking, Text: text}
}

// Failure returns an error event reported by the provider.
func Failure(message string) StreamEvent {
	return StreamEvent{Kind: EventError, Message: message}
}

// DecodeFailure returns an error event for a frame that failed to decode.
func DecodeFailure(message string) StreamEvent {
	return StreamEvent{Kind: EventError, Message: message, Decode: true}
}

// Done returns the soft end-of-message marker.
func Done() StreamEvent {
	return StreamEvent{Kind: EventDone}
}

// Ignore returns an event for frames without payload.
func Ignore() StreamEvent {
	return StreamEvent{Kind: EventIgnore}
}

// IsText reports whether the event carries text the caller should see.
func (event StreamEvent) IsText() bool {
	return event.Kind == EventContent || event.Kind == EventThinking
}

// SinkEvent is what the caller's sink receives. Done is true exactly once per
// call, on the last invocation.
type SinkEvent struct {
	Chunk       string `json:"chunk"`
	Done        bool   `json:"done"`
	Model       string `json:"model"`
	FullContent string `json:"full_content,omitempty"` // Set on the terminal event
	Error       string `json:"error,omitempty"`        // Set on failed or cancelled terminal events
	Thinking    bool   `json:"thinking,omitempty"`     // Chunk came from a thinking delta
}

// Sink receives the canonical event stream of one call. Invocations are
// sequential; a sink never sees two calls for the same session concurrently.
type Sink func(event SinkEvent)

// CancelledMessage is the error text of the terminal event for user cancellation.
const CancelledMessage = "Cancelled by user"
