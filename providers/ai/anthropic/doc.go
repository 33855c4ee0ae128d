// Package anthropic implements the [ai.Dialect] for Anthropic's Messages API.
//
// The stream is typed SSE: an `event: <type>` line followed by a
// `data: {...}` line whose JSON repeats the type. Text and extended-thinking
// deltas are told apart by the delta type. `message_stop` is only a soft end
// marker; the engine keeps reading until the connection closes.
//
// The system prompt travels in the top-level `system` field and extended
// thinking is requested only when the budget is within the range the API
// accepts.
package anthropic
