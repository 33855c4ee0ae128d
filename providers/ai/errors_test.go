package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// TestTransportError_Unwrap verifies the cause stays reachable.
func TestTransportError_Unwrap(t *testing.T) {
	err := error(&TransportError{Message: "connect", Err: context.DeadlineExceeded})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected DeadlineExceeded in chain")
	}
	if !strings.Contains(err.Error(), "deadline") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

// TestTransportError_StatusMessage verifies the status is part of the text.
func TestTransportError_StatusMessage(t *testing.T) {
	err := &TransportError{StatusCode: 429, Message: "slow down"}

	if err.Error() != "http 429: slow down" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

// TestRequireModel verifies the empty model check.
func TestRequireModel(t *testing.T) {
	if RequireModel("m") != nil {
		t.Error("expected nil for non-empty model")
	}
	var configErr *ConfigurationError
	if !errors.As(RequireModel(""), &configErr) {
		t.Error("expected *ConfigurationError for empty model")
	}
}
