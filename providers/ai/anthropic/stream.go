package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

// Classify implements ai.Dialect for Anthropic typed SSE lines.
func (d *Dialect) Classify(frame string) ai.StreamEvent {
	data, ok := utils.SSEData(frame)
	if !ok || data == "" {
		return ai.Ignore()
	}

	var event streamEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return ai.DecodeFailure(fmt.Sprintf("malformed anthropic event: %v", err))
	}

	switch event.Type {
	case eventContentBlockDelta:
		return classifyDelta(event.Delta)
	case eventContentBlockStart:
		// Initial text of a block is normally empty; redacted thinking is
		// opaque and never shown.
		if event.ContentBlock != nil && event.ContentBlock.Type == "text" && event.ContentBlock.Text != "" {
			return ai.Content(event.ContentBlock.Text)
		}
		return ai.Ignore()
	case eventError:
		if event.Error != nil && event.Error.Message != "" {
			return ai.Failure(event.Error.Message)
		}
		return ai.Failure("anthropic stream error")
	case eventMessageStop:
		return ai.Done()
	}
	return ai.Ignore()
}

func classifyDelta(delta *streamDelta) ai.StreamEvent {
	if delta == nil {
		return ai.Ignore()
	}
	switch delta.Type {
	case deltaText:
		if delta.Text != "" {
			return ai.Content(delta.Text)
		}
	case deltaThinking:
		if delta.Thinking != "" {
			return ai.Thinking(delta.Thinking)
		}
	}
	return ai.Ignore()
}
