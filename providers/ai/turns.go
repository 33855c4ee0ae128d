package ai

// TurnSeparator joins the text of two same-role turns when they are merged.
const TurnSeparator = "\n\n"

// AppendPrompt returns a copy of history with prompt appended as a user turn.
func AppendPrompt(history []Turn, prompt string) []Turn {
	turns := make([]Turn, 0, len(history)+1)
	turns = append(turns, history...)
	return append(turns, Turn{Role: RoleUser, Content: prompt})
}

// AlternatePrompt returns history plus the prompt as a strictly alternating
// sequence: whenever a turn has the same role as the one before it, its text
// is joined onto the previous turn with TurnSeparator instead of starting a
// new turn. The merge applies to the final prompt as well. The input slice is
// never modified.
func AlternatePrompt(history []Turn, prompt string) []Turn {
	turns := make([]Turn, 0, len(history)+1)
	for _, turn := range history {
		turns = mergeOrAppend(turns, turn)
	}
	return mergeOrAppend(turns, Turn{Role: RoleUser, Content: prompt})
}

// MergedCount reports how many turns AlternatePrompt would fold away.
func MergedCount(history []Turn, prompt string) int {
	return len(history) + 1 - len(AlternatePrompt(history, prompt))
}

func mergeOrAppend(turns []Turn, turn Turn) []Turn {
	if last := len(turns) - 1; last >= 0 && turns[last].Role == turn.Role {
		turns[last].Content += TurnSeparator + turn.Content
		return turns
	}
	return append(turns, turn)
}
