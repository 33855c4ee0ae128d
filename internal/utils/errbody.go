package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/kaptinlin/jsonrepair"
)

// maxErrorMessageLength bounds messages pulled from error bodies.
const maxErrorMessageLength = 300

// ExtractErrorMessage turns a non-2xx response body into a short, readable
// message. It tries, in order: a JSON error payload (repairing it first if it
// does not parse) and an HTML error page converted to text. Any other body
// yields the status text for status.
func ExtractErrorMessage(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return statusText(status)
	}

	if message, ok := messageFromJSON(trimmed); ok {
		return TruncateString(message, maxErrorMessageLength)
	}

	if repaired, err := jsonrepair.JSONRepair(string(trimmed)); err == nil {
		if message, ok := messageFromJSON([]byte(repaired)); ok {
			return TruncateString(message, maxErrorMessageLength)
		}
	}

	if looksLikeHTML(trimmed) {
		if markdown, err := htmltomarkdown.ConvertString(string(trimmed)); err == nil {
			if text := collapseWhitespace(markdown); text != "" {
				return TruncateString(text, maxErrorMessageLength)
			}
		}
	}
	return statusText(status)
}

// messageFromJSON understands the error envelopes used by the supported
// providers: {"error":{"message":...}}, {"error":"..."}, {"message":...} and
// a top-level array wrapping any of those.
func messageFromJSON(raw []byte) (string, bool) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", false
	}
	return messageFromValue(decoded)
}

func messageFromValue(value any) (string, bool) {
	switch typed := value.(type) {
	case []any:
		if len(typed) == 0 {
			return "", false
		}
		return messageFromValue(typed[0])
	case map[string]any:
		switch errValue := typed["error"].(type) {
		case map[string]any:
			if message, ok := errValue["message"].(string); ok && message != "" {
				return message, true
			}
		case string:
			if errValue != "" {
				return errValue, true
			}
		}
		if message, ok := typed["message"].(string); ok && message != "" {
			return message, true
		}
	}
	return "", false
}

func looksLikeHTML(body []byte) bool {
	lower := bytes.ToLower(body[:min(len(body), 512)])
	return bytes.HasPrefix(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<body"))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}
