package ai

// ProviderID identifies a provider dialect in the [Registry].
type ProviderID string

// Known provider identifiers.
const (
	ProviderOpenAI     ProviderID = "openai"
	ProviderAnthropic  ProviderID = "anthropic"
	ProviderGemini     ProviderID = "gemini"
	ProviderDeepSeek   ProviderID = "deepseek"
	ProviderPerplexity ProviderID = "perplexity"
)

// String returns the identifier as a plain string.
func (id ProviderID) String() string {
	return string(id)
}

// Dialect is the per-provider behaviour the streaming engine dispatches on.
// A Dialect is stateless: everything that must survive across reads of one
// response lives in the FrameScanner returned by NewScanner, which the caller
// owns for exactly one request.
type Dialect interface {
	// ID returns the provider identifier the dialect is registered under.
	ID() ProviderID

	// BuildRequest turns a canonical request into a streaming HTTP request.
	// It performs no I/O. The only failure mode is malformed input (for
	// example an empty model id), reported as a *ConfigurationError.
	BuildRequest(spec RequestSpec, apiKey string) (*ProviderRequest, error)

	// BuildProbe builds the smallest legal non-streaming request for model,
	// used to confirm that apiKey is accepted.
	BuildProbe(apiKey string, model string) (*ProviderRequest, error)

	// NewScanner returns a fresh frame scanner configured for the provider's
	// line discipline.
	NewScanner() FrameScanner

	// Classify maps one decoded frame to a canonical event.
	Classify(frame string) StreamEvent
}

// FrameScanner turns a growing byte stream into discrete frames. Bytes that
// do not yet form a complete frame are retained for the next Feed.
type FrameScanner interface {
	// Feed appends chunk to the internal buffer and returns every frame that
	// became complete, in arrival order.
	Feed(chunk []byte) []string

	// Flush is called once at end of transport and returns whatever trailing
	// data is still buffered as a last frame attempt.
	Flush() []string

	// Buffered reports how many unconsumed bytes are held.
	Buffered() int

	// Reset discards the buffer.
	Reset()
}

// EndpointOverrider is implemented by dialects whose base URL can be replaced,
// typically to target a proxy, a compatible host, or a test server.
type EndpointOverrider interface {
	WithBaseURL(baseURL string) Dialect
}

// ModelConfigurer is implemented by dialects whose request shape depends on
// per-model capabilities (for example whether a system prompt is accepted).
// The client hands it the models from the provider configuration.
type ModelConfigurer interface {
	WithModels(models []ModelInfo) Dialect
}
