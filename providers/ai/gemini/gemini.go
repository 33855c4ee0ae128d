package gemini

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	streamMethod = "streamGenerateContent"
	probeMethod  = "generateContent"

	probePrompt = "Hi"
)

// Dialect speaks the Gemini streamGenerateContent protocol.
type Dialect struct {
	baseURL string

	// models holds configured capabilities, keyed by model id.
	models map[string]ai.ModelInfo
}

// New returns the Gemini dialect. The base URL (without API version) is read
// from GEMINI_API_BASE_URL and defaults to the public endpoint.
func New() *Dialect {
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Dialect{baseURL: strings.TrimRight(baseURL, "/")}
}

// ID implements ai.Dialect.
func (d *Dialect) ID() ai.ProviderID {
	return ai.ProviderGemini
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

// WithModels returns a copy of the dialect that consults models for
// per-model capabilities before falling back to the built-in rules.
func (d *Dialect) WithModels(models []ai.ModelInfo) ai.Dialect {
	clone := *d
	clone.models = make(map[string]ai.ModelInfo, len(models))
	for _, info := range models {
		clone.models[info.ID] = info
	}
	return &clone
}

// NewScanner implements ai.Dialect.
func (d *Dialect) NewScanner() ai.FrameScanner {
	return utils.NewJSONScanner(utils.WithArrayEnvelope())
}

// BuildRequest implements ai.Dialect.
func (d *Dialect) BuildRequest(spec ai.RequestSpec, apiKey string) (*ai.ProviderRequest, error) {
	if err := ai.RequireModel(spec.Model); err != nil {
		return nil, err
	}

	if merged := ai.MergedCount(spec.History, spec.Prompt); merged > 0 {
		slog.Debug("gemini: merged consecutive same-role turns",
			"model", spec.Model,
			"merged", merged,
		)
	}

	request := generateRequest{
		Contents:         contentsFromTurns(ai.AlternatePrompt(spec.History, spec.Prompt)),
		GenerationConfig: generationConfig(spec),
	}

	if spec.SystemPrompt != "" {
		if d.supportsSystemPrompt(spec.Model) {
			request.SystemInstruction = &content{Parts: []part{{Text: spec.SystemPrompt}}}
		} else {
			slog.Warn("gemini: model does not support system instructions, dropping system prompt",
				"model", spec.Model,
			)
		}
	}

	body, err := utils.MarshalWithFields(request, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return ai.NewProviderRequest(d.endpoint(spec.Model, streamMethod), body, d.headers(apiKey)), nil
}

// BuildProbe implements ai.Dialect.
func (d *Dialect) BuildProbe(apiKey string, model string) (*ai.ProviderRequest, error) {
	if err := ai.RequireModel(model); err != nil {
		return nil, err
	}

	request := generateRequest{
		Contents:         []content{{Role: roleUser, Parts: []part{{Text: probePrompt}}}},
		GenerationConfig: map[string]any{fieldMaxOutputTokens: 1},
	}
	body, err := utils.MarshalWithFields(request, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return ai.NewProviderRequest(d.endpoint(model, probeMethod), body, d.headers(apiKey)), nil
}

func (d *Dialect) endpoint(model string, method string) string {
	return fmt.Sprintf("%s/%s/models/%s:%s", d.baseURL, apiVersion(model), model, method)
}

func (d *Dialect) headers(apiKey string) map[string]string {
	return map[string]string{"x-goog-api-key": apiKey}
}

func (d *Dialect) supportsSystemPrompt(model string) bool {
	if info, ok := d.models[model]; ok && info.SupportsSystemPrompt != nil {
		return *info.SupportsSystemPrompt
	}
	return defaultSupportsSystemPrompt(model)
}

var (
	_ ai.Dialect           = (*Dialect)(nil)
	_ ai.EndpointOverrider = (*Dialect)(nil)
	_ ai.ModelConfigurer   = (*Dialect)(nil)
)
