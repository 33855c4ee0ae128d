package gemini

import "github.com/leofalp/aistream/providers/ai"

// contentsFromTurns maps canonical roles to Gemini roles (assistant → model).
func contentsFromTurns(turns []ai.Turn) []content {
	contents := make([]content, 0, len(turns))
	for _, turn := range turns {
		role := roleUser
		if turn.Role == ai.RoleAssistant {
			role = roleModel
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: turn.Content}}})
	}
	return contents
}

// generationConfig builds the generationConfig object. It is a map because
// the token-limit field may be renamed by the caller.
func generationConfig(spec ai.RequestSpec) map[string]any {
	config := map[string]any{}
	if spec.Temperature != nil {
		config["temperature"] = *spec.Temperature
	}
	if spec.TopP != nil {
		config["topP"] = *spec.TopP
	}
	if spec.MaxTokens > 0 {
		field := fieldMaxOutputTokens
		if spec.TokenParameterName != "" {
			field = spec.TokenParameterName
		}
		config[field] = spec.MaxTokens
	}
	if spec.ThinkingBudget != nil {
		config["thinkingConfig"] = thinkingConfig{
			ThinkingBudget:  *spec.ThinkingBudget,
			IncludeThoughts: *spec.ThinkingBudget != 0,
		}
	}
	if len(config) == 0 {
		return nil
	}
	return config
}
