package openai

import (
	"encoding/json"
	"fmt"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

const doneSentinel = "[DONE]"

// Classify implements ai.Dialect for OpenAI-style SSE lines.
func (d *Dialect) Classify(frame string) ai.StreamEvent {
	data, ok := utils.SSEData(frame)
	if !ok {
		return ai.Ignore()
	}
	if data == doneSentinel {
		return ai.Done()
	}
	if data == "" {
		return ai.Ignore()
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return ai.DecodeFailure(fmt.Sprintf("malformed %s chunk: %v", d.id, err))
	}

	if chunk.Error != nil && chunk.Error.Message != "" {
		return ai.Failure(chunk.Error.Message)
	}
	if len(chunk.Choices) == 0 {
		return ai.Ignore()
	}

	delta := chunk.Choices[0].Delta
	switch {
	case delta.Content != "":
		return ai.Content(delta.Content)
	case d.reasoningContent && delta.ReasoningContent != "":
		return ai.Thinking(delta.ReasoningContent)
	case delta.Reasoning != "":
		return ai.Thinking(delta.Reasoning)
	}
	return ai.Ignore()
}
