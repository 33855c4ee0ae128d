// Package perplexity configures the OpenAI-compatible dialect for the
// Perplexity API. Perplexity rejects two consecutive turns with the same
// role, so the dialect folds them together before sending.
package perplexity

import (
	"os"

	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/ai/openai"
)

const defaultBaseURL = "https://api.perplexity.ai"

// New returns the Perplexity dialect. The base URL is read from
// PERPLEXITY_API_BASE_URL and defaults to the public endpoint.
func New() *openai.Dialect {
	baseURL := os.Getenv("PERPLEXITY_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return openai.NewCompatible(ai.ProviderPerplexity, baseURL, openai.WithAlternatingTurns())
}
