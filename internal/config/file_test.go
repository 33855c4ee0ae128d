package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leofalp/aistream/providers/ai"
)

const sampleFile = `
providers:
  openai:
    api_key: sk-file
    model: gpt-4o
  gemini:
    endpoint: http://localhost:9999
    default_model: gemini-2.5-pro
    models:
      - id: gemini-2.5-flash
        context_window: 1000
      - id: tuned-model
        supports_system_prompt: false
client:
  timeout: 90s
  breaker:
    max_failures: 3
  rate_limit:
    rps: 1.5
    burst: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aistream.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_ProvidersAndSettings(t *testing.T) {
	p, err := LoadFile(writeConfig(t, sampleFile))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	creds, _ := p.Credentials(ai.ProviderOpenAI)
	if creds.APIKey != "sk-file" || creds.Model != "gpt-4o" {
		t.Errorf("openai creds = %+v", creds)
	}

	cfg, _ := p.ProviderConfig(ai.ProviderGemini)
	if cfg.Endpoint != "http://localhost:9999" || cfg.DefaultModel != "gemini-2.5-pro" {
		t.Errorf("gemini config = %+v", cfg)
	}
	if flash, _ := cfg.Model("gemini-2.5-flash"); flash.ContextWindow != 1000 {
		t.Errorf("file model did not replace the built-in one: %+v", flash)
	}
	if tuned, ok := cfg.Model("tuned-model"); !ok || tuned.SupportsSystemPrompt == nil || *tuned.SupportsSystemPrompt {
		t.Errorf("tuned model = %+v", tuned)
	}
	if _, ok := cfg.Model("gemma-3-27b-it"); !ok {
		t.Error("built-in models were dropped")
	}

	settings := p.Settings()
	if settings.Timeout != 90*time.Second || settings.Breaker.MaxFailures != 3 || settings.Breaker.Timeout != 30*time.Second {
		t.Errorf("settings = %+v", settings)
	}
	if settings.RateLimit.RPS != 1.5 || settings.RateLimit.Burst != 2 {
		t.Errorf("rate limit = %+v", settings.RateLimit)
	}
}

// TestLoadFile_EnvOverride checks AISTREAM_ variables override and extend the file.
func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("AISTREAM_PROVIDERS_OPENAI_API_KEY", "sk-override")
	t.Setenv("AISTREAM_PROVIDERS_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("AISTREAM_CLIENT_TIMEOUT", "5s")

	p, err := LoadFile(writeConfig(t, sampleFile))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if creds, _ := p.Credentials(ai.ProviderOpenAI); creds.APIKey != "sk-override" || creds.Model != "gpt-4o" {
		t.Errorf("openai creds = %+v", creds)
	}
	if creds, _ := p.Credentials(ai.ProviderAnthropic); creds.APIKey != "sk-ant" {
		t.Errorf("anthropic creds = %+v", creds)
	}
	if got := p.Settings().Timeout; got != 5*time.Second {
		t.Errorf("timeout = %v", got)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

// TestFileProvider_ReloadKeepsPreviousOnError checks a broken edit does not wipe the loaded config.
func TestFileProvider_ReloadKeepsPreviousOnError(t *testing.T) {
	path := writeConfig(t, sampleFile)
	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if err := os.WriteFile(path, []byte("providers: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(); err == nil {
		t.Fatal("expected a reload error")
	}
	if creds, _ := p.Credentials(ai.ProviderOpenAI); creds.APIKey != "sk-file" {
		t.Errorf("previous config lost: %+v", creds)
	}
}
