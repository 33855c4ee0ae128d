package openai

import "strings"

// reasoningPrefixes are the model families that reject max_tokens in favour
// of max_completion_tokens.
var reasoningPrefixes = []string{"o1", "o3", "o4", "gpt-5"}

// isReasoningModel reports whether model belongs to a reasoning family.
// Provider prefixes such as "openai/" are ignored.
func isReasoningModel(model string) bool {
	model = strings.ToLower(model)
	if slash := strings.LastIndexByte(model, '/'); slash >= 0 {
		model = model[slash+1:]
	}
	for _, prefix := range reasoningPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
