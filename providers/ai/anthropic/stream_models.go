package anthropic

/*
	ANTHROPIC SSE STREAMING - WIRE TYPES

	Each event arrives as an "event:" line naming the type, followed by a
	"data:" line whose JSON carries the same type. Only the data line is
	decoded.

	Event lifecycle:
	  message_start → content_block_start → content_block_delta → content_block_stop →
	  message_delta → message_stop
*/

const (
	eventContentBlockStart = "content_block_start"
	eventContentBlockDelta = "content_block_delta"
	eventMessageStop       = "message_stop"
	eventError             = "error"

	deltaText     = "text_delta"
	deltaThinking = "thinking_delta"
)

// streamEvent is the envelope of every data line.
type streamEvent struct {
	Type         string        `json:"type"`
	Index        int           `json:"index,omitempty"`
	ContentBlock *contentBlock `json:"content_block,omitempty"` // content_block_start
	Delta        *streamDelta  `json:"delta,omitempty"`         // content_block_delta, message_delta
	Error        *apiError     `json:"error,omitempty"`         // error
}

type contentBlock struct {
	Type     string `json:"type"` // "text", "thinking", "redacted_thinking"
	Text     string `json:"text,omitempty"`
	Thinking string `json:"thinking,omitempty"`
}

type streamDelta struct {
	Type       string `json:"type,omitempty"`
	Text       string `json:"text,omitempty"`
	Thinking   string `json:"thinking,omitempty"`
	Signature  string `json:"signature,omitempty"`
	StopReason string `json:"stop_reason,omitempty"` // message_delta
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
