package openai

const (
	roleSystem = "system"
	roleUser   = "user"

	fieldMaxTokens           = "max_tokens"
	fieldMaxCompletionTokens = "max_completion_tokens" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

/*
	##### REQUEST #####
*/

// chatRequest is the body of POST /chat/completions. The token limit field
// is added at marshal time because its name depends on the model.
type chatRequest struct {
	Model           string        `json:"model"`
	Messages        []chatMessage `json:"messages"`
	Stream          bool          `json:"stream"`
	Temperature     *float64      `json:"temperature,omitempty"`
	TopP            *float64      `json:"top_p,omitempty"`
	ReasoningEffort string        `json:"reasoning_effort,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

/*
	##### STREAM CHUNK #####
*/

type streamChunk struct {
	ID      string         `json:"id,omitempty"`
	Model   string         `json:"model,omitempty"`
	Choices []streamChoice `json:"choices"`
	Error   *apiError      `json:"error,omitempty"`
}

type streamChoice struct {
	Index        int         `json:"index"`
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason,omitempty"`
}

type streamDelta struct {
	Role             string `json:"role,omitempty"`
	Content          string `json:"content,omitempty"`
	ReasoningContent string `json:"reasoning_content,omitempty"` // DeepSeek
	Reasoning        string `json:"reasoning,omitempty"`         // OpenRouter and other compatible hosts
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    any    `json:"code,omitempty"`
}
