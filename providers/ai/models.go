package ai

import "net/http"

/*
	##### PROVIDER INPUT #####
*/

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"      // End-user message
	RoleAssistant Role = "assistant" // Earlier model response
)

// Turn is one entry of the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ReasoningEffort selects how much effort reasoning models spend before answering.
type ReasoningEffort string

const (
	ReasoningEffortNone   ReasoningEffort = ""
	ReasoningEffortLow    ReasoningEffort = "low"
	ReasoningEffortMedium ReasoningEffort = "medium"
	ReasoningEffortHigh   ReasoningEffort = "high"
)

// RequestSpec is the canonical, provider-agnostic description of one
// completion request. Builders treat it as immutable.
type RequestSpec struct {
	Prompt             string          `json:"prompt"`                         // Current user turn, always sent last
	Model              string          `json:"model"`                          // Model identifier, required
	MaxTokens          int             `json:"max_tokens"`                     // Output token limit
	Temperature        *float64        `json:"temperature,omitempty"`          // Omitted from the wire when nil
	TopP               *float64        `json:"top_p,omitempty"`                // Omitted from the wire when nil
	SystemPrompt       string          `json:"system_prompt,omitempty"`        // Placement is provider specific
	History            []Turn          `json:"history,omitempty"`              // Ordered, oldest first
	ThinkingBudget     *int            `json:"thinking_budget,omitempty"`      // Anthropic extended thinking
	ReasoningEffort    ReasoningEffort `json:"reasoning_effort,omitempty"`     // OpenAI reasoning families
	TokenParameterName string          `json:"token_parameter_name,omitempty"` // Overrides the per-provider token field name
}

// ProviderRequest is a transport-ready HTTP request description. It is built
// once per call and never mutated afterwards.
type ProviderRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

// NewProviderRequest returns a POST request with a JSON content type. Extra
// headers are copied so the caller's map can be reused.
func NewProviderRequest(url string, body []byte, headers map[string]string) *ProviderRequest {
	merged := make(map[string]string, len(headers)+1)
	merged["Content-Type"] = "application/json"
	for key, value := range headers {
		merged[key] = value
	}
	return &ProviderRequest{
		URL:     url,
		Method:  http.MethodPost,
		Headers: merged,
		Body:    body,
	}
}

/*
	##### COLLABORATORS #####
*/

// Credentials is what the credential provider hands out for one provider.
type Credentials struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	Model  string `json:"model,omitempty" yaml:"model,omitempty"` // Preferred model, if the user picked one
}

// ModelInfo describes one model a provider offers.
type ModelInfo struct {
	ID                   string  `json:"id" yaml:"id" mapstructure:"id"`
	ContextWindow        int     `json:"context_window,omitempty" yaml:"context_window,omitempty" mapstructure:"context_window"`
	SupportsSystemPrompt *bool   `json:"supports_system_prompt,omitempty" yaml:"supports_system_prompt,omitempty" mapstructure:"supports_system_prompt"`
	InputPrice           float64 `json:"input_price,omitempty" yaml:"input_price,omitempty" mapstructure:"input_price"`    // USD per million tokens
	OutputPrice          float64 `json:"output_price,omitempty" yaml:"output_price,omitempty" mapstructure:"output_price"` // USD per million tokens
}

// ProviderConfig carries per-provider defaults.
type ProviderConfig struct {
	Endpoint     string      `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	DefaultModel string      `json:"default_model" yaml:"default_model" mapstructure:"default_model"`
	Models       []ModelInfo `json:"models,omitempty" yaml:"models,omitempty" mapstructure:"models"`
}

// Model returns the ModelInfo registered under id.
func (c ProviderConfig) Model(id string) (ModelInfo, bool) {
	for _, info := range c.Models {
		if info.ID == id {
			return info, true
		}
	}
	return ModelInfo{}, false
}

// CredentialProvider is the read-only collaborator that owns API keys and
// provider defaults. The engine never persists or mutates what it returns.
type CredentialProvider interface {
	Credentials(id ProviderID) (Credentials, error)
	ProviderConfig(id ProviderID) (ProviderConfig, error)
}
