package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/leofalp/aistream/providers/ai"
)

// EnvPrefix is the prefix of environment variables overriding file keys:
// providers.openai.api_key is overridden by AISTREAM_PROVIDERS_OPENAI_API_KEY.
const EnvPrefix = "AISTREAM"

// File is the layout of the configuration file.
//
//	providers:
//	  openai:
//	    api_key: sk-...
//	    model: gpt-4o
//	  gemini:
//	    endpoint: https://proxy.internal/gemini
//	    default_model: gemini-2.5-flash
//	    models:
//	      - id: gemma-3-27b-it
//	        supports_system_prompt: false
//	client:
//	  timeout: 2m
//	  breaker:
//	    max_failures: 5
//	    timeout: 30s
//	  rate_limit:
//	    rps: 2
//	    burst: 4
type File struct {
	Providers map[string]ProviderEntry `mapstructure:"providers" yaml:"providers"`
	Client    ClientSettings           `mapstructure:"client" yaml:"client"`
}

// ProviderEntry is one provider block of the file.
type ProviderEntry struct {
	APIKey       string         `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Model        string         `mapstructure:"model" yaml:"model,omitempty"`
	Endpoint     string         `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	DefaultModel string         `mapstructure:"default_model" yaml:"default_model,omitempty"`
	Models       []ai.ModelInfo `mapstructure:"models" yaml:"models,omitempty"`
}

// ClientSettings configures the client middlewares.
type ClientSettings struct {
	Timeout   time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	Breaker   BreakerSettings   `mapstructure:"breaker" yaml:"breaker"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// BreakerSettings configures the circuit breaker. MaxFailures 0 disables it.
type BreakerSettings struct {
	MaxFailures uint32        `mapstructure:"max_failures" yaml:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// RateLimitSettings configures the rate limiter. RPS 0 disables it.
type RateLimitSettings struct {
	RPS      float64 `mapstructure:"rps" yaml:"rps"`
	Burst    int     `mapstructure:"burst" yaml:"burst"`
	FailFast bool    `mapstructure:"fail_fast" yaml:"fail_fast"`
}

var clientDefaults = map[string]any{
	"client.timeout":              "0s",
	"client.breaker.max_failures": 0,
	"client.breaker.timeout":      "30s",
	"client.rate_limit.rps":       0,
	"client.rate_limit.burst":     1,
	"client.rate_limit.fail_fast": false,
}

// FileProvider serves credentials and provider configs from a YAML file.
// Built-in defaults fill in whatever a provider block leaves out.
type FileProvider struct {
	v *viper.Viper

	mu   sync.RWMutex
	file File
}

// LoadFile reads path. Every key can be overridden from the environment with
// the AISTREAM_ prefix, including provider keys missing from the file.
func LoadFile(path string) (*FileProvider, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range clientDefaults {
		v.SetDefault(key, value)
	}
	// AutomaticEnv only sees keys viper already knows about.
	for _, id := range BuiltinProviders() {
		for _, field := range []string{"api_key", "model", "endpoint", "default_model"} {
			if err := v.BindEnv("providers." + id.String() + "." + field); err != nil {
				return nil, fmt.Errorf("bind env for %s.%s: %w", id, field, err)
			}
		}
	}

	provider := &FileProvider{v: v}
	if err := provider.Reload(); err != nil {
		return nil, err
	}
	return provider, nil
}

// Reload re-reads the file. On error the previous contents are kept.
func (p *FileProvider) Reload() error {
	if err := p.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", p.v.ConfigFileUsed(), err)
	}

	var file File
	if err := p.v.Unmarshal(&file); err != nil {
		return fmt.Errorf("decode config %s: %w", p.v.ConfigFileUsed(), err)
	}

	p.mu.Lock()
	p.file = file
	p.mu.Unlock()
	return nil
}

// Path returns the file in use.
func (p *FileProvider) Path() string {
	return p.v.ConfigFileUsed()
}

// Settings returns the client section.
func (p *FileProvider) Settings() ClientSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.file.Client
}

func (p *FileProvider) entry(id ai.ProviderID) (ProviderEntry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.file.Providers[id.String()]
	return entry, ok
}

// Credentials returns the key and preferred model of id's block. A missing
// block yields empty credentials, not an error.
func (p *FileProvider) Credentials(id ai.ProviderID) (ai.Credentials, error) {
	entry, _ := p.entry(id)
	return ai.Credentials{APIKey: entry.APIKey, Model: entry.Model}, nil
}

// ProviderConfig overlays id's block on the built-in defaults. Models listed
// in the file replace built-in entries with the same id and are appended
// otherwise.
func (p *FileProvider) ProviderConfig(id ai.ProviderID) (ai.ProviderConfig, error) {
	cfg := Builtin(id)
	entry, ok := p.entry(id)
	if !ok {
		return cfg, nil
	}

	if entry.Endpoint != "" {
		cfg.Endpoint = entry.Endpoint
	}
	if entry.DefaultModel != "" {
		cfg.DefaultModel = entry.DefaultModel
	}
	for _, model := range entry.Models {
		cfg.Models = upsertModel(cfg.Models, model)
	}
	return cfg, nil
}

func upsertModel(models []ai.ModelInfo, model ai.ModelInfo) []ai.ModelInfo {
	for i := range models {
		if models[i].ID == model.ID {
			models[i] = model
			return models
		}
	}
	return append(models, model)
}
