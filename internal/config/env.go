package config

import (
	"os"
	"strings"

	"github.com/leofalp/aistream/providers/ai"
)

// EnvProvider reads credentials from <PROVIDER>_API_KEY and <PROVIDER>_MODEL,
// e.g. OPENAI_API_KEY and OPENAI_MODEL. Provider configs are the built-in
// defaults, with <PROVIDER>_API_BASE_URL overriding the endpoint and
// <PROVIDER>_DEFAULT_MODEL the default model.
type EnvProvider struct {
	lookup func(string) (string, bool)
}

// NewEnvProvider returns a provider reading the process environment.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{lookup: os.LookupEnv}
}

// Credentials never fails; a missing key is returned as an empty APIKey and
// rejected later by the client.
func (p *EnvProvider) Credentials(id ai.ProviderID) (ai.Credentials, error) {
	return ai.Credentials{
		APIKey: p.get(id, "API_KEY"),
		Model:  p.get(id, "MODEL"),
	}, nil
}

// ProviderConfig returns the built-in config for id.
func (p *EnvProvider) ProviderConfig(id ai.ProviderID) (ai.ProviderConfig, error) {
	cfg := Builtin(id)
	if endpoint := p.get(id, "API_BASE_URL"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if model := p.get(id, "DEFAULT_MODEL"); model != "" {
		cfg.DefaultModel = model
	}
	return cfg, nil
}

func (p *EnvProvider) get(id ai.ProviderID, suffix string) string {
	value, _ := p.lookup(EnvName(id, suffix))
	return strings.TrimSpace(value)
}

// EnvName builds the variable name for a provider setting: EnvName("openai",
// "API_KEY") is "OPENAI_API_KEY". Dashes in ids become underscores.
func EnvName(id ai.ProviderID, suffix string) string {
	name := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "_"))
	return name + "_" + suffix
}
