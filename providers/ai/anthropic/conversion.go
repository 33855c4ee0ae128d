package anthropic

import "github.com/leofalp/aistream/providers/ai"

// minThinkingBudget is the smallest budget_tokens the API accepts.
const minThinkingBudget = 1024

// buildThinkingConfig returns the thinking block for budget, or nil when the
// budget is unset, below minThinkingBudget, or not strictly below maxTokens.
// An out-of-range budget disables thinking for the request without error.
func buildThinkingConfig(budget *int, maxTokens int) *thinkingConfig {
	if budget == nil {
		return nil
	}
	if *budget < minThinkingBudget || *budget >= maxTokens {
		return nil
	}
	return &thinkingConfig{Type: "enabled", BudgetTokens: *budget}
}

func messagesFromTurns(turns []ai.Turn) []anthropicMessage {
	messages := make([]anthropicMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, anthropicMessage{Role: string(turn.Role), Content: turn.Content})
	}
	return messages
}

func tokenField(spec ai.RequestSpec) string {
	if spec.TokenParameterName != "" {
		return spec.TokenParameterName
	}
	return fieldMaxTokens
}
