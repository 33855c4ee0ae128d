package anthropic

import (
	"strings"
	"testing"

	"github.com/leofalp/aistream/providers/ai"
)

// TestClassify covers the typed events of the Messages stream.
func TestClassify(t *testing.T) {
	dialect := New()
	testCases := []struct {
		name  string
		frame string
		want  ai.StreamEvent
	}{
		{name: "event line", frame: `event: content_block_delta`, want: ai.Ignore()},
		{name: "message start", frame: `data: {"type":"message_start","message":{"id":"msg_1"}}`, want: ai.Ignore()},
		{name: "text delta", frame: `data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hello"}}`, want: ai.Content("Hello")},
		{name: "thinking delta", frame: `data: {"type":"content_block_delta","index":0,"delta":{"type":"thinking_delta","thinking":"Let me"}}`, want: ai.Thinking("Let me")},
		{name: "signature delta", frame: `data: {"type":"content_block_delta","index":0,"delta":{"type":"signature_delta","signature":"EqQB"}}`, want: ai.Ignore()},
		{name: "redacted thinking", frame: `data: {"type":"content_block_start","index":0,"content_block":{"type":"redacted_thinking","data":"xyz"}}`, want: ai.Ignore()},
		{name: "ping", frame: `data: {"type":"ping"}`, want: ai.Ignore()},
		{name: "message delta", frame: `data: {"type":"message_delta","delta":{"stop_reason":"end_turn"}}`, want: ai.Ignore()},
		{name: "message stop", frame: `data: {"type":"message_stop"}`, want: ai.Done()},
		{name: "error event", frame: `data: {"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, want: ai.Failure("Overloaded")},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := dialect.Classify(testCase.frame); got != testCase.want {
				t.Errorf("Classify() = %+v, want %+v", got, testCase.want)
			}
		})
	}
}

// TestClassify_MalformedJSON verifies decode failures are flagged.
func TestClassify_MalformedJSON(t *testing.T) {
	event := New().Classify(`data: {"type":"content_block_delta",`)

	if event.Kind != ai.EventError || !event.Decode {
		t.Errorf("expected decode failure, got %+v", event)
	}
}

// TestScanAndClassify_FullStream runs a recorded stream through the line
// scanner and checks the event order.
func TestScanAndClassify_FullStream(t *testing.T) {
	stream := strings.Join([]string{
		"event: message_start",
		`data: {"type":"message_start","message":{"id":"msg_1","model":"claude"}}`,
		"",
		"event: content_block_start",
		`data: {"type":"content_block_start","index":0,"content_block":{"type":"thinking","thinking":""}}`,
		"",
		"event: content_block_delta",
		`data: {"type":"content_block_delta","index":0,"delta":{"type":"thinking_delta","thinking":"2+2"}}`,
		"",
		"event: content_block_delta",
		`data: {"type":"content_block_delta","index":1,"delta":{"type":"text_delta","text":"4"}}`,
		"",
		"event: message_stop",
		`data: {"type":"message_stop"}`,
		"",
	}, "\n")

	dialect := New()
	scanner := dialect.NewScanner()
	frames := append(scanner.Feed([]byte(stream)), scanner.Flush()...)

	var kinds []ai.EventKind
	for _, frame := range frames {
		if event := dialect.Classify(frame); event.Kind != ai.EventIgnore {
			kinds = append(kinds, event.Kind)
		}
	}

	want := []ai.EventKind{ai.EventThinking, ai.EventContent, ai.EventDone}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
}
