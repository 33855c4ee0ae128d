package utils

import "strings"

// SSEData returns the payload of an SSE "data:" line. Any other line (event
// names, ids, comments) reports false.
func SSEData(frame string) (string, bool) {
	payload, found := strings.CutPrefix(frame, "data:")
	if !found {
		return "", false
	}
	return strings.TrimSpace(payload), true
}
