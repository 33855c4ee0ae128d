package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leofalp/aistream/providers/ai"
)

// TestDoStream_SuccessResponse_ReturnsOpenBody verifies that a 2xx response
// comes back with a readable body.
func TestDoStream_SuccessResponse_ReturnsOpenBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "data: hello\n\n")
	}))
	defer server.Close()

	response, err := DoStream(context.Background(), server.Client(), ai.NewProviderRequest(server.URL, []byte(`{}`), nil))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer CloseWithLog(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(body) != "data: hello\n\n" {
		t.Errorf("unexpected body %q", string(body))
	}
}

// TestDoStream_NonTwoxxResponse_ReturnsTransportError verifies the status
// code and the extracted provider message are carried in the error.
func TestDoStream_NonTwoxxResponse_ReturnsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided"}}`)
	}))
	defer server.Close()

	response, err := DoStream(context.Background(), server.Client(), ai.NewProviderRequest(server.URL, nil, nil))
	if response != nil {
		t.Error("expected nil response on non-2xx status")
	}

	var transportErr *ai.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *ai.TransportError, got %T (%v)", err, err)
	}
	if transportErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", transportErr.StatusCode)
	}
	if transportErr.Message != "Incorrect API key provided" {
		t.Errorf("unexpected message %q", transportErr.Message)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error string should mention the status, got %q", err.Error())
	}
}

// TestDoStream_ContextCancellation_ReturnsError verifies that an already
// cancelled context fails before any response is produced.
func TestDoStream_ContextCancellation_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DoStream(ctx, server.Client(), ai.NewProviderRequest(server.URL, nil, nil))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

// TestDoStream_CustomHeaders verifies headers from the ProviderRequest are
// sent and Content-Type is preserved when set explicitly.
func TestDoStream_CustomHeaders(t *testing.T) {
	var gotVersion, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	request := ai.NewProviderRequest(server.URL, nil, map[string]string{
		"anthropic-version": "2023-06-01",
		"Authorization":     "Bearer k",
	})
	response, err := DoStream(context.Background(), nil, request)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	CloseWithLog(response.Body)

	if gotVersion != "2023-06-01" {
		t.Errorf("expected anthropic-version header, got %q", gotVersion)
	}
	if gotAuth != "Bearer k" {
		t.Errorf("expected Authorization header, got %q", gotAuth)
	}
}

// TestDoStream_NilRequest verifies a nil request is rejected.
func TestDoStream_NilRequest(t *testing.T) {
	if _, err := DoStream(context.Background(), nil, nil); err == nil {
		t.Error("expected error for nil request")
	}
}
