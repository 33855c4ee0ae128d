package ai

import (
	"errors"
	"fmt"
)

// Sentinel errors, checkable with errors.Is.
var (
	// ErrCancelled marks user-initiated cancellation. The client never returns
	// it from Stream; it only tags the terminal sink event internally.
	ErrCancelled = errors.New("aistream: cancelled by user")

	// ErrUnknownProvider is returned when no dialect is registered for an id.
	ErrUnknownProvider = errors.New("aistream: unknown provider")

	// ErrCircuitOpen is returned while a provider's circuit breaker is open.
	ErrCircuitOpen = errors.New("aistream: circuit open")

	// ErrRateLimited is returned when the client-side rate limiter refuses a call.
	ErrRateLimited = errors.New("aistream: rate limited")
)

// ConfigurationError reports a missing or invalid RequestSpec field. It is
// raised before any network call is attempted.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// TransportError covers connection failures, non-2xx responses and timeouts.
// StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s", e.Err.Error())
	}
	return "transport error: " + e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a frame that could not be decoded.
type DecodeError struct {
	Frame string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed frame: %v", e.Err)
	}
	return "malformed frame"
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ProviderError is an error the upstream service reported inside an otherwise
// successful HTTP response.
type ProviderError struct {
	Provider ProviderID
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// RequireModel returns a ConfigurationError when model is empty.
func RequireModel(model string) error {
	if model == "" {
		return &ConfigurationError{Field: "model", Reason: "is required"}
	}
	return nil
}
