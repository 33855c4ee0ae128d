// Package openai implements the [ai.Dialect] for the OpenAI chat completions
// wire format: newline-delimited SSE with `data: {...}` frames and the
// `data: [DONE]` sentinel.
//
// [New] targets api.openai.com (or OPENAI_API_BASE_URL when set) and knows
// about the reasoning model families (o1, o3, o4, gpt-5), which take
// `max_completion_tokens` and `reasoning_effort`. [NewCompatible] builds the
// same dialect for any other host that speaks this wire format; the deepseek
// and perplexity packages are thin configurations of it.
package openai
