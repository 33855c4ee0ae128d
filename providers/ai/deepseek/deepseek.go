// Package deepseek configures the OpenAI-compatible dialect for the DeepSeek
// API, whose reasoning models stream their chain of thought in
// `delta.reasoning_content` ahead of the answer.
package deepseek

import (
	"os"

	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/ai/openai"
)

const defaultBaseURL = "https://api.deepseek.com"

// New returns the DeepSeek dialect. The base URL is read from
// DEEPSEEK_API_BASE_URL and defaults to the public endpoint.
func New() *openai.Dialect {
	baseURL := os.Getenv("DEEPSEEK_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return openai.NewCompatible(ai.ProviderDeepSeek, baseURL, openai.WithReasoningContent())
}
