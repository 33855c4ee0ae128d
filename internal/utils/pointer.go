package utils

// Ptr returns a pointer to a copy of v, for optional request fields such as
// RequestSpec.Temperature or ModelInfo.SupportsSystemPrompt.
func Ptr[T any](v T) *T {
	return &v
}
