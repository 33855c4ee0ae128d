package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/observability"
)

// maxErrorBodySize caps how much of a non-2xx body is read to build the error
// message (64 KiB).
const maxErrorBodySize int64 = 64 * 1024

// DoStream sends request and returns the response with its body left open for
// incremental reading. The caller owns the body and must close it.
//
// Connection failures and non-2xx statuses come back as *ai.TransportError.
// On the non-2xx path the body is read (bounded), turned into a readable
// message with ExtractErrorMessage, and closed before returning.
func DoStream(ctx context.Context, client *http.Client, request *ai.ProviderRequest) (*http.Response, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	httpRequest, err := newHTTPRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	if span != nil {
		span.AddEvent("http.stream_request.prepared",
			observability.String(observability.AttrHTTPMethod, httpRequest.Method),
			observability.String(observability.AttrHTTPURL, request.URL),
			observability.Int(observability.AttrHTTPRequestBodySize, len(request.Body)),
		)
	}

	requestStart := time.Now()
	response, err := httpClient.Do(httpRequest)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent("http.stream_request.error",
				observability.Error(err),
				observability.Duration("http.request.duration", requestDuration),
			)
		}
		return nil, &ai.TransportError{Message: "error sending stream request", Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		defer CloseWithLog(response.Body)
		errorBody, readErr := io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))
		if readErr != nil {
			return nil, &ai.TransportError{
				StatusCode: response.StatusCode,
				Message:    http.StatusText(response.StatusCode),
				Err:        readErr,
			}
		}
		if span != nil {
			span.AddEvent("http.stream_response.rejected",
				observability.Int(observability.AttrHTTPStatusCode, response.StatusCode),
				observability.Int(observability.AttrHTTPResponseBodySize, len(errorBody)),
			)
		}
		return nil, &ai.TransportError{
			StatusCode: response.StatusCode,
			Message:    ExtractErrorMessage(response.StatusCode, errorBody),
		}
	}

	if span != nil {
		span.AddEvent("http.stream_response.started",
			observability.Int(observability.AttrHTTPStatusCode, response.StatusCode),
			observability.Duration("http.request.duration", requestDuration),
		)
	}

	return response, nil
}

func newHTTPRequest(ctx context.Context, request *ai.ProviderRequest) (*http.Request, error) {
	if request == nil {
		return nil, fmt.Errorf("nil provider request")
	}
	method := request.Method
	if method == "" {
		method = http.MethodPost
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, request.URL, bytes.NewReader(request.Body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, value := range request.Headers {
		httpRequest.Header.Set(key, value)
	}
	if httpRequest.Header.Get("Content-Type") == "" {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	return httpRequest, nil
}
