package gemini

const (
	roleUser  = "user"
	roleModel = "model"

	fieldMaxOutputTokens = "maxOutputTokens" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

/*
	##### REQUEST #####
*/

type generateRequest struct {
	Contents          []content      `json:"contents"`
	SystemInstruction *content       `json:"systemInstruction,omitempty"`
	GenerationConfig  map[string]any `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text    string `json:"text,omitempty"`
	Thought bool   `json:"thought,omitempty"` // true if this part is a thinking summary
}

type thinkingConfig struct {
	ThinkingBudget  int  `json:"thinkingBudget"`
	IncludeThoughts bool `json:"includeThoughts,omitempty"`
}

/*
	##### STREAM ELEMENT #####
*/

type streamResponse struct {
	Candidates []candidate `json:"candidates,omitempty"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content      *content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}
