package utils

import (
	"encoding/json"
	"testing"
)

// TestMarshalWithFields_AddsDynamicField verifies the extra field is merged
// next to the struct fields.
func TestMarshalWithFields_AddsDynamicField(t *testing.T) {
	body := struct {
		Model string `json:"model"`
	}{Model: "gpt-4o"}

	encoded, err := MarshalWithFields(body, map[string]any{"max_completion_tokens": 64, "skipped": nil})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["model"] != "gpt-4o" {
		t.Errorf("expected model to survive, got %v", decoded["model"])
	}
	if decoded["max_completion_tokens"] != float64(64) {
		t.Errorf("expected dynamic field, got %v", decoded["max_completion_tokens"])
	}
	if _, ok := decoded["skipped"]; ok {
		t.Error("nil extra values must be skipped")
	}
}

// TestMarshalWithFields_RejectsNonObject verifies extras cannot be merged
// into a non-object value.
func TestMarshalWithFields_RejectsNonObject(t *testing.T) {
	if _, err := MarshalWithFields([]int{1}, map[string]any{"a": 1}); err == nil {
		t.Error("expected error for array body")
	}
}

// TestSSEData covers data lines and the lines that are not.
func TestSSEData(t *testing.T) {
	testCases := []struct {
		frame  string
		want   string
		wantOK bool
	}{
		{frame: `data: {"a":1}`, want: `{"a":1}`, wantOK: true},
		{frame: `data:[DONE]`, want: `[DONE]`, wantOK: true},
		{frame: `event: message_start`, wantOK: false},
		{frame: `: keep-alive`, wantOK: false},
	}

	for _, testCase := range testCases {
		got, ok := SSEData(testCase.frame)
		if ok != testCase.wantOK || got != testCase.want {
			t.Errorf("SSEData(%q) = (%q, %v), want (%q, %v)", testCase.frame, got, ok, testCase.want, testCase.wantOK)
		}
	}
}
