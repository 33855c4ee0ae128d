package observability

// Attribute keys, span, event and metric names shared by the transport, the
// middlewares and the observers.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the provider id (e.g. "openai", "gemini")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the request URL of the provider
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMMaxTokens is the output token limit of the request
	AttrLLMMaxTokens = "llm.max_tokens" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMStreaming marks streaming requests
	AttrLLMStreaming = "llm.streaming"
)

// --- Stream Session Attributes ---

const (
	// AttrSessionID is the ULID of one Stream call
	AttrSessionID = "session.id"

	// AttrSessionState is the terminal state (completed, failed, cancelled)
	AttrSessionState = "session.state"

	// AttrStreamChunks is the number of content and thinking chunks forwarded
	AttrStreamChunks = "llm.stream.chunks"

	// AttrStreamContentLength is the byte length of the accumulated content
	AttrStreamContentLength = "llm.stream.content_length"

	// AttrRequestHistoryCount is the number of history turns in the request
	AttrRequestHistoryCount = "request.history_count"

	// AttrStreamSawDone records whether the provider sent its end-of-message marker
	AttrStreamSawDone = "llm.stream.saw_done"

	// AttrFrameSize is the byte length of one decoded frame
	AttrFrameSize = "llm.stream.frame.size"

	// AttrStreamBufferedBytes is the number of unterminated bytes left when the body ends
	AttrStreamBufferedBytes = "llm.stream.buffered_bytes"
)

// --- Conversation Memory Attributes ---

const (
	// AttrMemoryTurnRole is the role of the stored turn
	AttrMemoryTurnRole = "memory.turn.role"

	// AttrMemoryTurnLength is the content length of the stored turn
	AttrMemoryTurnLength = "memory.turn.length"

	// AttrMemoryTotalTurns is the number of turns after the operation
	AttrMemoryTotalTurns = "memory.total_turns"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"

	// AttrReason explains a negative outcome, e.g. a rejected credential probe
	AttrReason = "reason"
)

// --- Span Names ---

const (
	// SpanLLMStream covers one Stream call from connect to terminal event
	SpanLLMStream = "llm.stream"

	// SpanLLMValidate covers one credential probe
	SpanLLMValidate = "llm.validate"
)

// --- Event Names ---

const (
	// EventLLMRequestStart marks the start of an LLM request
	EventLLMRequestStart = "llm.request.start"

	// EventStreamFirstChunk marks the first forwarded chunk
	EventStreamFirstChunk = "llm.stream.first_chunk"

	// EventStreamEnd marks the terminal event of a session
	EventStreamEnd = "llm.stream.end"

	// EventStreamFlush marks a final scan over bytes the body left unterminated
	EventStreamFlush = "llm.stream.flush"

	// EventMemoryAppend marks a turn stored in conversation memory
	EventMemoryAppend = "memory.append"

	// EventMemoryClear marks a conversation memory reset
	EventMemoryClear = "memory.clear"
)

// --- Metric Names ---

const (
	// MetricStreamCompleted counts sessions that completed
	MetricStreamCompleted = "aistream.stream.completed"

	// MetricStreamFailed counts sessions that failed
	MetricStreamFailed = "aistream.stream.failed"

	// MetricStreamCancelled counts sessions cancelled by the caller
	MetricStreamCancelled = "aistream.stream.cancelled"

	// MetricStreamDuration records session duration in milliseconds
	MetricStreamDuration = "aistream.stream.duration_ms"

	// MetricValidateCount counts credential probes, labelled by status
	MetricValidateCount = "aistream.validate.count"
)
