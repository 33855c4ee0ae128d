// Package ai defines the canonical, provider-agnostic types of the streaming
// engine: the [RequestSpec] a caller describes a completion with, the
// [ProviderRequest] a dialect builds from it, the [StreamEvent] vocabulary
// frames are classified into, and the [SinkEvent] stream delivered to callers.
//
// Each provider package (openai, anthropic, gemini, deepseek, perplexity)
// implements [Dialect]. Dialects are looked up by [ProviderID] through a
// [Registry], so the engine never needs to know which provider it talks to.
// Failures are reported with the typed errors in errors.go.
package ai
