package anthropic

const fieldMaxTokens = "max_tokens" // #nosec G101 -- Not a credential, token refers to LLM tokens

// messagesRequest is the body of POST /v1/messages. max_tokens is added at
// marshal time so its name can be overridden.
type messagesRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Stream      bool               `json:"stream,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	TopP        *float64           `json:"top_p,omitempty"`
	Thinking    *thinkingConfig    `json:"thinking,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// thinkingConfig enables extended thinking with a fixed token budget.
type thinkingConfig struct {
	Type         string `json:"type"`
	BudgetTokens int    `json:"budget_tokens"`
}
