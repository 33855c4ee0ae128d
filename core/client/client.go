package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/ai/anthropic"
	"github.com/leofalp/aistream/providers/ai/deepseek"
	"github.com/leofalp/aistream/providers/ai/gemini"
	"github.com/leofalp/aistream/providers/ai/openai"
	"github.com/leofalp/aistream/providers/ai/perplexity"
	"github.com/leofalp/aistream/providers/observability"
)

// Client dispatches streaming calls to provider dialects. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	registry    *ai.Registry
	credentials ai.CredentialProvider
	httpClient  *http.Client
	observer    observability.Provider
	middlewares []StreamMiddleware
	chain       StreamFunc
}

// Option configures a Client.
type Option func(*Client)

// WithRegistry replaces the default registry of built-in dialects.
func WithRegistry(registry *ai.Registry) Option {
	return func(c *Client) {
		c.registry = registry
	}
}

// WithHTTPClient sets the HTTP client used for streams and probes. Its Timeout
// bounds the whole response, so streaming setups usually leave it at zero and
// rely on context deadlines instead.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithObserver enables spans, counters and log records for every session.
func WithObserver(observer observability.Provider) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithMiddleware appends stream middlewares. The first one given is the
// outermost.
func WithMiddleware(middlewares ...StreamMiddleware) Option {
	return func(c *Client) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// NewDefaultRegistry returns a registry holding every built-in dialect.
func NewDefaultRegistry() *ai.Registry {
	return ai.NewRegistry(
		openai.New(),
		anthropic.New(),
		gemini.New(),
		deepseek.New(),
		perplexity.New(),
	)
}

// New builds a Client. credentials is required.
func New(credentials ai.CredentialProvider, opts ...Option) (*Client, error) {
	if credentials == nil {
		return nil, errors.New("client: credential provider is required")
	}

	c := &Client{credentials: credentials}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = NewDefaultRegistry()
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	for i, middleware := range c.middlewares {
		if middleware == nil {
			return nil, fmt.Errorf("client: middleware at index %d is nil", i)
		}
	}

	c.chain = buildStreamChain(c.runSession, c.middlewares)
	return c, nil
}

// Providers returns the ids the client can dispatch to.
func (c *Client) Providers() []ai.ProviderID {
	return c.registry.IDs()
}

// Stream sends spec to providerID and forwards every content and thinking
// delta to sink as it arrives. The sink then receives exactly one terminal
// event (Done set):
//
//   - success: FullContent holds the concatenation of every forwarded chunk;
//   - failure: Error holds a readable message and FullContent the partial
//     content, and Stream returns the typed error;
//   - cancellation of ctx: Error is ai.CancelledMessage and Stream returns nil.
//
// Errors raised before any network call (unknown provider, missing model,
// missing credentials) follow the failure path too.
func (c *Client) Stream(ctx context.Context, providerID ai.ProviderID, spec ai.RequestSpec, sink ai.Sink) error {
	if sink == nil {
		return &ai.ConfigurationError{Field: "sink", Reason: "is required"}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.observer != nil {
		ctx = observability.ContextWithObserver(ctx, c.observer)
	}

	guard := newTerminalGuard(sink, spec.Model)

	call, err := c.resolve(providerID, spec)
	if err != nil {
		return guard.finish(ctx, err)
	}
	guard.model = call.Spec.Model

	return guard.finish(ctx, c.chain(ctx, call, guard.emit))
}

// resolve looks up the dialect and fills in the model, key and endpoint the
// call will use. The model comes from the request, then the stored credentials,
// then the provider's default model.
func (c *Client) resolve(providerID ai.ProviderID, spec ai.RequestSpec) (StreamCall, error) {
	dialect, err := c.registry.Lookup(providerID)
	if err != nil {
		return StreamCall{}, err
	}

	credentials, err := c.credentials.Credentials(providerID)
	if err != nil {
		return StreamCall{}, fmt.Errorf("load credentials for %s: %w", providerID, err)
	}
	if credentials.APIKey == "" {
		return StreamCall{}, &ai.ConfigurationError{Field: "api key", Reason: fmt.Sprintf("is not configured for %s", providerID)}
	}

	config, err := c.credentials.ProviderConfig(providerID)
	if err != nil {
		return StreamCall{}, fmt.Errorf("load provider config for %s: %w", providerID, err)
	}

	if spec.Model == "" {
		spec.Model = credentials.Model
	}
	if spec.Model == "" {
		spec.Model = config.DefaultModel
	}
	if err := ai.RequireModel(spec.Model); err != nil {
		return StreamCall{}, err
	}

	return StreamCall{
		Provider:  providerID,
		Spec:      spec,
		SessionID: newSessionID(),
		dialect:   configureDialect(dialect, config),
		apiKey:    credentials.APIKey,
	}, nil
}

// configureDialect applies the endpoint override and model table from config
// when the dialect supports them.
func configureDialect(dialect ai.Dialect, config ai.ProviderConfig) ai.Dialect {
	if config.Endpoint != "" {
		if overrider, ok := dialect.(ai.EndpointOverrider); ok {
			dialect = overrider.WithBaseURL(config.Endpoint)
		}
	}
	if len(config.Models) > 0 {
		if configurer, ok := dialect.(ai.ModelConfigurer); ok {
			dialect = configurer.WithModels(config.Models)
		}
	}
	return dialect
}
