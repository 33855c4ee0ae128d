package anthropic

import (
	"encoding/json"
	"testing"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

func decodeBody(t *testing.T, request *ai.ProviderRequest) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(request.Body, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	return body
}

// TestBuildRequest_HeadersAndSystemField verifies auth headers, the system
// field and the message order.
func TestBuildRequest_HeadersAndSystemField(t *testing.T) {
	t.Setenv("ANTHROPIC_API_BASE_URL", "")
	request, err := New().BuildRequest(ai.RequestSpec{
		Prompt:       "second",
		Model:        "claude-sonnet-4-5",
		MaxTokens:    2000,
		SystemPrompt: "you are terse",
		History:      []ai.Turn{{Role: ai.RoleUser, Content: "first"}, {Role: ai.RoleAssistant, Content: "ok"}},
	}, "sk-ant")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if request.URL != "https://api.anthropic.com/v1/messages" {
		t.Errorf("unexpected URL %q", request.URL)
	}
	if request.Headers["x-api-key"] != "sk-ant" {
		t.Errorf("unexpected x-api-key %q", request.Headers["x-api-key"])
	}
	if request.Headers["anthropic-version"] != "2023-06-01" {
		t.Errorf("unexpected anthropic-version %q", request.Headers["anthropic-version"])
	}
	if _, ok := request.Headers["Authorization"]; ok {
		t.Error("Anthropic does not use bearer auth")
	}

	body := decodeBody(t, request)
	if body["system"] != "you are terse" {
		t.Errorf("expected system field, got %v", body["system"])
	}
	if body["max_tokens"] != float64(2000) || body["stream"] != true {
		t.Errorf("unexpected body %v", body)
	}
	messages := body["messages"].([]any)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for _, raw := range messages {
		if raw.(map[string]any)["role"] == "system" {
			t.Error("system prompt must not be a message")
		}
	}
}

// TestBuildRequest_ThinkingBudget verifies the budget bounds.
func TestBuildRequest_ThinkingBudget(t *testing.T) {
	testCases := []struct {
		name         string
		budget       *int
		maxTokens    int
		wantThinking bool
	}{
		{name: "below minimum", budget: utils.Ptr(512), maxTokens: 4000, wantThinking: false},
		{name: "at minimum", budget: utils.Ptr(1024), maxTokens: 4000, wantThinking: true},
		{name: "equal to max tokens", budget: utils.Ptr(4000), maxTokens: 4000, wantThinking: false},
		{name: "above max tokens", budget: utils.Ptr(8000), maxTokens: 4000, wantThinking: false},
		{name: "unset", budget: nil, maxTokens: 4000, wantThinking: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request, err := New().BuildRequest(ai.RequestSpec{
				Prompt:         "x",
				Model:          "claude-opus-4-1",
				MaxTokens:      testCase.maxTokens,
				ThinkingBudget: testCase.budget,
			}, "k")
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}

			thinking, ok := decodeBody(t, request)["thinking"].(map[string]any)
			if ok != testCase.wantThinking {
				t.Fatalf("thinking present=%v, want %v", ok, testCase.wantThinking)
			}
			if ok && (thinking["type"] != "enabled" || thinking["budget_tokens"] != float64(*testCase.budget)) {
				t.Errorf("unexpected thinking block %v", thinking)
			}
		})
	}
}

// TestBuildRequest_DefaultMaxTokens verifies the required field is filled in.
func TestBuildRequest_DefaultMaxTokens(t *testing.T) {
	request, err := New().BuildRequest(ai.RequestSpec{Prompt: "x", Model: "claude-haiku-4-5"}, "k")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := decodeBody(t, request)["max_tokens"]; got != float64(defaultMaxTokens) {
		t.Errorf("expected default max_tokens, got %v", got)
	}
}

// TestBuildProbe_MinimalRequest verifies the probe shape.
func TestBuildProbe_MinimalRequest(t *testing.T) {
	request, err := New().WithBaseURL("http://proxy.test/").BuildProbe("k", "claude-haiku-4-5")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if request.URL != "http://proxy.test/messages" {
		t.Errorf("unexpected URL %q", request.URL)
	}
	body := decodeBody(t, request)
	if body["max_tokens"] != float64(1) {
		t.Errorf("expected max_tokens=1, got %v", body["max_tokens"])
	}
	if _, ok := body["stream"]; ok {
		t.Error("probe must not stream")
	}
}
