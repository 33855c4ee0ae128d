package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/leofalp/aistream/providers/ai"
)

// Classify implements ai.Dialect. A frame is a complete JSON value; when it
// is an array (the scanner was not told to unwrap the envelope) its first
// element is used.
func (d *Dialect) Classify(frame string) ai.StreamEvent {
	raw := bytes.TrimSpace([]byte(frame))
	if len(raw) == 0 {
		return ai.Ignore()
	}

	if raw[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			return ai.DecodeFailure(fmt.Sprintf("malformed gemini frame: %v", err))
		}
		if len(elements) == 0 {
			return ai.Ignore()
		}
		raw = elements[0]
	}

	var response streamResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return ai.DecodeFailure(fmt.Sprintf("malformed gemini frame: %v", err))
	}

	if response.Error != nil {
		message := response.Error.Message
		if message == "" {
			message = response.Error.Status
		}
		if message == "" {
			message = "gemini stream error"
		}
		return ai.Failure(message)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ai.Ignore()
	}
	parts := response.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return ai.Ignore()
	}
	if parts[0].Thought {
		return ai.Thinking(parts[0].Text)
	}
	return ai.Content(parts[0].Text)
}
