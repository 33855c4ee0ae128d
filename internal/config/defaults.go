// Package config implements ai.CredentialProvider on top of the environment
// and a YAML configuration file, and carries the built-in provider defaults.
package config

import (
	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

// builtinConfigs holds the default model and the known model table of every
// built-in provider. Endpoints are left empty: each dialect has its own
// default and <PROVIDER>_API_BASE_URL override.
var builtinConfigs = map[ai.ProviderID]ai.ProviderConfig{
	ai.ProviderOpenAI: {
		DefaultModel: "gpt-4o-mini",
		Models: []ai.ModelInfo{
			{ID: "gpt-4o", ContextWindow: 128000},
			{ID: "gpt-4o-mini", ContextWindow: 128000},
			{ID: "o3-mini", ContextWindow: 200000},
			{ID: "gpt-5", ContextWindow: 400000},
		},
	},
	ai.ProviderAnthropic: {
		DefaultModel: "claude-sonnet-4-5",
		Models: []ai.ModelInfo{
			{ID: "claude-sonnet-4-5", ContextWindow: 200000},
			{ID: "claude-haiku-4-5", ContextWindow: 200000},
			{ID: "claude-opus-4-1", ContextWindow: 200000},
		},
	},
	ai.ProviderGemini: {
		DefaultModel: "gemini-2.5-flash",
		Models: []ai.ModelInfo{
			{ID: "gemini-2.5-flash", ContextWindow: 1048576},
			{ID: "gemini-2.5-pro", ContextWindow: 1048576},
			{ID: "gemma-3-27b-it", ContextWindow: 131072, SupportsSystemPrompt: utils.Ptr(false)},
		},
	},
	ai.ProviderDeepSeek: {
		DefaultModel: "deepseek-chat",
		Models: []ai.ModelInfo{
			{ID: "deepseek-chat", ContextWindow: 128000},
			{ID: "deepseek-reasoner", ContextWindow: 128000},
		},
	},
	ai.ProviderPerplexity: {
		DefaultModel: "sonar",
		Models: []ai.ModelInfo{
			{ID: "sonar", ContextWindow: 128000},
			{ID: "sonar-pro", ContextWindow: 200000},
			{ID: "sonar-reasoning", ContextWindow: 128000},
		},
	},
}

// BuiltinProviders lists the ids that have built-in defaults.
func BuiltinProviders() []ai.ProviderID {
	return []ai.ProviderID{ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderGemini, ai.ProviderDeepSeek, ai.ProviderPerplexity}
}

// Builtin returns a copy of the built-in configuration for id, or a zero
// ProviderConfig for unknown ids.
func Builtin(id ai.ProviderID) ai.ProviderConfig {
	cfg := builtinConfigs[id]
	cfg.Models = append([]ai.ModelInfo(nil), cfg.Models...)
	return cfg
}
