// Package gemini implements the [ai.Dialect] for Google's Gemini API.
//
// streamGenerateContent is called without alt=sse, so the response is one
// JSON array whose elements arrive over time with no per-frame delimiter.
// The dialect therefore uses a balanced-JSON scanner that steps inside the
// outer array and yields each element as soon as it closes.
//
// Gemini has no system role. The system prompt is sent as
// systemInstruction when the model supports it (Gemma models do not) and
// dropped with a warning otherwise. Experimental model ids are routed to the
// v1alpha API surface.
package gemini
