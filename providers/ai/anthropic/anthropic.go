package anthropic

import (
	"fmt"
	"os"
	"strings"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

const (
	// defaultBaseURL is the canonical base URL for Anthropic's Messages API.
	defaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	anthropicVersion = "2023-06-01"

	// defaultMaxTokens is used when RequestSpec.MaxTokens is unset; the
	// Messages API requires the field.
	defaultMaxTokens = 4096

	probePrompt = "Hi"
)

// Dialect speaks the Anthropic Messages streaming protocol.
type Dialect struct {
	baseURL string
}

// New returns the Anthropic dialect. The base URL is read from
// ANTHROPIC_API_BASE_URL and defaults to https://api.anthropic.com/v1.
func New() *Dialect {
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Dialect{baseURL: strings.TrimRight(baseURL, "/")}
}

// ID implements ai.Dialect.
func (d *Dialect) ID() ai.ProviderID {
	return ai.ProviderAnthropic
}

// BaseURL returns the configured base URL.
func (d *Dialect) BaseURL() string {
	return d.baseURL
}

// WithBaseURL returns a copy of the dialect targeting baseURL.
func (d *Dialect) WithBaseURL(baseURL string) ai.Dialect {
	return &Dialect{baseURL: strings.TrimRight(baseURL, "/")}
}

// NewScanner implements ai.Dialect.
func (d *Dialect) NewScanner() ai.FrameScanner {
	return utils.NewLineScanner()
}

// BuildRequest implements ai.Dialect.
func (d *Dialect) BuildRequest(spec ai.RequestSpec, apiKey string) (*ai.ProviderRequest, error) {
	if err := ai.RequireModel(spec.Model); err != nil {
		return nil, err
	}

	maxTokens := spec.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	request := messagesRequest{
		Model:       spec.Model,
		System:      spec.SystemPrompt,
		Messages:    messagesFromTurns(ai.AppendPrompt(spec.History, spec.Prompt)),
		Stream:      true,
		Temperature: spec.Temperature,
		TopP:        spec.TopP,
		Thinking:    buildThinkingConfig(spec.ThinkingBudget, maxTokens),
	}

	body, err := utils.MarshalWithFields(request, map[string]any{tokenField(spec): maxTokens})
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	headers := d.headers(apiKey)
	headers["Accept"] = "text/event-stream"
	return ai.NewProviderRequest(d.baseURL+messagesEndpoint, body, headers), nil
}

// BuildProbe implements ai.Dialect.
func (d *Dialect) BuildProbe(apiKey string, model string) (*ai.ProviderRequest, error) {
	if err := ai.RequireModel(model); err != nil {
		return nil, err
	}

	request := messagesRequest{
		Model:    model,
		Messages: []anthropicMessage{{Role: string(ai.RoleUser), Content: probePrompt}},
	}
	body, err := utils.MarshalWithFields(request, map[string]any{fieldMaxTokens: 1})
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	return ai.NewProviderRequest(d.baseURL+messagesEndpoint, body, d.headers(apiKey)), nil
}

func (d *Dialect) headers(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
	}
}

var (
	_ ai.Dialect           = (*Dialect)(nil)
	_ ai.EndpointOverrider = (*Dialect)(nil)
)
