package utils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/observability"
)

// DoProbe sends request, drains a bounded amount of the response and returns
// its status code. Only connection failures are returned as errors; any HTTP
// status, 2xx or not, is reported through the code.
func DoProbe(ctx context.Context, client *http.Client, request *ai.ProviderRequest) (int, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	httpRequest, err := newHTTPRequest(ctx, request)
	if err != nil {
		return 0, err
	}

	requestStart := time.Now()
	response, err := httpClient.Do(httpRequest)
	requestDuration := time.Since(requestStart)
	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration("http.request.duration", requestDuration),
			)
		}
		return 0, &ai.TransportError{Message: "error sending probe request", Err: err}
	}
	defer CloseWithLog(response.Body)

	// Drain so the connection can be reused.
	drained, _ := io.Copy(io.Discard, io.LimitReader(response.Body, maxErrorBodySize))

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, response.StatusCode),
			observability.Int64(observability.AttrHTTPResponseBodySize, drained),
			observability.Duration("http.request.duration", requestDuration),
		)
	}
	return response.StatusCode, nil
}

// CloseWithLog closes closer and logs, rather than returns, any error. It is
// meant for deferred body closes where a close failure must not replace the
// primary result.
func CloseWithLog(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
