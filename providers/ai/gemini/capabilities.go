package gemini

import "strings"

const (
	apiVersionStable       = "v1beta"
	apiVersionExperimental = "v1alpha"
)

// apiVersion picks the API surface for model: experimental ids ("-exp",
// which also covers "thinking-exp") are only served by v1alpha.
func apiVersion(model string) string {
	if strings.Contains(strings.ToLower(model), "-exp") {
		return apiVersionExperimental
	}
	return apiVersionStable
}

// defaultSupportsSystemPrompt is used when the configuration says nothing
// about model. Gemma models reject systemInstruction.
func defaultSupportsSystemPrompt(model string) bool {
	return !strings.Contains(strings.ToLower(model), "gemma")
}
