package openai

import (
	"fmt"
	"os"
	"strings"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// probePrompt is the trivial prompt of a validation probe.
	probePrompt = "Hi"
)

// Dialect speaks the OpenAI chat completions streaming protocol. The zero
// value is not usable; construct it with New or NewCompatible. A Dialect is
// immutable: the With* methods return modified copies.
type Dialect struct {
	id      ai.ProviderID
	baseURL string
	path    string

	// reasoningFamilies enables the OpenAI model-family rules for the token
	// field name and reasoning_effort.
	reasoningFamilies bool

	// alternateTurns folds consecutive same-role turns into one.
	alternateTurns bool

	// reasoningContent classifies delta.reasoning_content as thinking.
	reasoningContent bool
}

// Option configures a Dialect built by NewCompatible.
type Option func(*Dialect)

// WithPath replaces the chat completions path appended to the base URL.
func WithPath(path string) Option {
	return func(d *Dialect) {
		d.path = path
	}
}

// WithAlternatingTurns makes the request builder merge consecutive turns
// that share a role, joining their text with a blank line. The final prompt
// is merged too when the history ends on a user turn.
func WithAlternatingTurns() Option {
	return func(d *Dialect) {
		d.alternateTurns = true
	}
}

// WithReasoningContent classifies `delta.reasoning_content` as thinking.
func WithReasoningContent() Option {
	return func(d *Dialect) {
		d.reasoningContent = true
	}
}

// WithReasoningFamilies applies the OpenAI reasoning model rules.
func WithReasoningFamilies() Option {
	return func(d *Dialect) {
		d.reasoningFamilies = true
	}
}

// New returns the dialect for the OpenAI API. The base URL is read from
// OPENAI_API_BASE_URL and defaults to the public endpoint.
func New() *Dialect {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return NewCompatible(ai.ProviderOpenAI, baseURL, WithReasoningFamilies())
}

// NewCompatible returns a dialect registered under id for any host exposing
// an OpenAI-compatible chat completions endpoint at baseURL.
func NewCompatible(id ai.ProviderID, baseURL string, opts ...Option) *Dialect {
	dialect := &Dialect{
		id:      id,
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    chatCompletionsEndpoint,
	}
	for _, opt := range opts {
		opt(dialect)
	}
	return dialect
}

// ID implements ai.Dialect.
func (d *Dialect) ID() ai.ProviderID {
	return d.id
}

// BaseURL returns the configured base URL.
func (d *Dialect) BaseURL() string {
	return d.baseURL
}

// WithBaseURL returns a copy of the dialect targeting baseURL.
func (d *Dialect) WithBaseURL(baseURL string) ai.Dialect {
	clone := *d
	clone.baseURL = strings.TrimRight(baseURL, "/")
	return &clone
}

// NewScanner implements ai.Dialect. SSE is newline delimited.
func (d *Dialect) NewScanner() ai.FrameScanner {
	return utils.NewLineScanner()
}

// BuildRequest implements ai.Dialect.
func (d *Dialect) BuildRequest(spec ai.RequestSpec, apiKey string) (*ai.ProviderRequest, error) {
	if err := ai.RequireModel(spec.Model); err != nil {
		return nil, err
	}

	request := chatRequest{
		Model:       spec.Model,
		Messages:    d.messages(spec),
		Stream:      true,
		Temperature: spec.Temperature,
		TopP:        spec.TopP,
	}
	if d.reasoningFamilies && spec.ReasoningEffort != ai.ReasoningEffortNone && isReasoningModel(spec.Model) {
		request.ReasoningEffort = string(spec.ReasoningEffort)
	}

	extra := map[string]any{}
	if spec.MaxTokens > 0 {
		extra[d.tokenField(spec)] = spec.MaxTokens
	}

	body, err := utils.MarshalWithFields(request, extra)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.id, err)
	}
	return ai.NewProviderRequest(d.baseURL+d.path, body, d.headers(apiKey, true)), nil
}

// BuildProbe implements ai.Dialect: one user turn, a single output token,
// streaming off.
func (d *Dialect) BuildProbe(apiKey string, model string) (*ai.ProviderRequest, error) {
	if err := ai.RequireModel(model); err != nil {
		return nil, err
	}

	request := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: roleUser, Content: probePrompt}},
	}
	extra := map[string]any{d.tokenField(ai.RequestSpec{Model: model}): 1}

	body, err := utils.MarshalWithFields(request, extra)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.id, err)
	}
	return ai.NewProviderRequest(d.baseURL+d.path, body, d.headers(apiKey, false)), nil
}

func (d *Dialect) messages(spec ai.RequestSpec) []chatMessage {
	var turns []ai.Turn
	if d.alternateTurns {
		turns = ai.AlternatePrompt(spec.History, spec.Prompt)
	} else {
		turns = ai.AppendPrompt(spec.History, spec.Prompt)
	}

	messages := make([]chatMessage, 0, len(turns)+1)
	if spec.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: roleSystem, Content: spec.SystemPrompt})
	}
	for _, turn := range turns {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	return messages
}

func (d *Dialect) tokenField(spec ai.RequestSpec) string {
	if spec.TokenParameterName != "" {
		return spec.TokenParameterName
	}
	if d.reasoningFamilies && isReasoningModel(spec.Model) {
		return fieldMaxCompletionTokens
	}
	return fieldMaxTokens
}

func (d *Dialect) headers(apiKey string, stream bool) map[string]string {
	headers := map[string]string{}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}
	if stream {
		headers["Accept"] = "text/event-stream"
	}
	return headers
}

var (
	_ ai.Dialect           = (*Dialect)(nil)
	_ ai.EndpointOverrider = (*Dialect)(nil)
)
