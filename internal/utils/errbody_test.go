package utils

import (
	"net/http"
	"strings"
	"testing"
)

// TestExtractErrorMessage covers the envelopes the providers use and the
// fallbacks for bodies that are not JSON.
func TestExtractErrorMessage(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "openai style nested message",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`,
			want:   "Incorrect API key",
		},
		{
			name:   "gemini style array envelope",
			status: http.StatusBadRequest,
			body:   `[{"error":{"code":400,"message":"API key not valid"}}]`,
			want:   "API key not valid",
		},
		{
			name:   "plain string error",
			status: http.StatusBadRequest,
			body:   `{"error":"bad model"}`,
			want:   "bad model",
		},
		{
			name:   "top level message",
			status: http.StatusNotFound,
			body:   `{"message":"model not found"}`,
			want:   "model not found",
		},
		{
			name:   "truncated json is repaired",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"quota exceeded"`,
			want:   "quota exceeded",
		},
		{
			name:   "empty body falls back to status text",
			status: http.StatusBadGateway,
			body:   "  ",
			want:   "Bad Gateway",
		},
		{
			name:   "plain text body falls back to status text",
			status: http.StatusServiceUnavailable,
			body:   "upstream\n  overloaded",
			want:   "Service Unavailable",
		},
		{
			name:   "json without a message falls back to status text",
			status: http.StatusInternalServerError,
			body:   `{"code":500}`,
			want:   "Internal Server Error",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := ExtractErrorMessage(testCase.status, []byte(testCase.body))
			if got != testCase.want {
				t.Errorf("ExtractErrorMessage() = %q, want %q", got, testCase.want)
			}
		})
	}
}

// TestExtractErrorMessage_HTMLPage verifies an HTML error page is reduced
// to its text.
func TestExtractErrorMessage_HTMLPage(t *testing.T) {
	body := `<!DOCTYPE html><html><head><title>502</title></head><body><h1>Bad Gateway</h1><p>The proxy failed.</p></body></html>`

	got := ExtractErrorMessage(http.StatusBadGateway, []byte(body))

	if strings.Contains(got, "<") {
		t.Errorf("expected markup to be stripped, got %q", got)
	}
	if !strings.Contains(got, "Bad Gateway") {
		t.Errorf("expected page text to be kept, got %q", got)
	}
}

// TestExtractErrorMessage_LongMessageTruncated verifies long messages are
// bounded.
func TestExtractErrorMessage_LongMessageTruncated(t *testing.T) {
	body := `{"error":{"message":"` + strings.Repeat("x", 2000) + `"}}`

	got := ExtractErrorMessage(http.StatusBadRequest, []byte(body))

	if !strings.Contains(got, "truncated") {
		t.Errorf("expected truncation marker, got %d bytes", len(got))
	}
}
