package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/observability"
)

// Validate reports whether apiKey is accepted by providerID. It sends the
// dialect's probe request (one "Hi" message, one output token, no streaming)
// and returns true on any 2xx status. An empty model falls back to the
// provider's configured default. It never returns an error; the reason for a
// false result is logged.
func (c *Client) Validate(ctx context.Context, providerID ai.ProviderID, apiKey string, model string) (valid bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	var span observability.Span
	if c.observer != nil {
		ctx, span = c.observer.StartSpan(ctx, observability.SpanLLMValidate,
			observability.String(observability.AttrLLMProvider, providerID.String()),
		)
		defer func() {
			status := "invalid"
			if valid {
				status = "valid"
			}
			span.SetAttributes(observability.String(observability.AttrStatus, status))
			span.End()
			c.observer.Counter(observability.MetricValidateCount).Add(ctx, 1,
				observability.String(observability.AttrLLMProvider, providerID.String()),
				observability.String(observability.AttrStatus, status),
			)
		}()
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			c.logValidate(ctx, providerID, "warn", fmt.Sprintf("probe panicked: %v", recovered))
			valid = false
		}
	}()

	if apiKey == "" {
		c.logValidate(ctx, providerID, "debug", "empty api key")
		return false
	}

	dialect, err := c.registry.Lookup(providerID)
	if err != nil {
		c.logValidate(ctx, providerID, "warn", err.Error())
		return false
	}

	config, err := c.credentials.ProviderConfig(providerID)
	if err != nil {
		c.logValidate(ctx, providerID, "debug", "no provider config: "+err.Error())
	}
	if model == "" {
		model = config.DefaultModel
	}
	dialect = configureDialect(dialect, config)

	request, err := dialect.BuildProbe(apiKey, model)
	if err != nil {
		c.logValidate(ctx, providerID, "warn", err.Error())
		return false
	}

	status, err := utils.DoProbe(ctx, c.httpClient, request)
	if err != nil {
		c.logValidate(ctx, providerID, "warn", err.Error())
		return false
	}
	if status < 200 || status > 299 {
		c.logValidate(ctx, providerID, "debug", fmt.Sprintf("probe rejected with status %d", status))
		return false
	}
	return true
}

func (c *Client) logValidate(ctx context.Context, providerID ai.ProviderID, level string, reason string) {
	if c.observer == nil {
		if level == "warn" {
			slog.WarnContext(ctx, "credential probe failed", "provider", providerID, "reason", reason)
		} else {
			slog.DebugContext(ctx, "credential probe failed", "provider", providerID, "reason", reason)
		}
		return
	}
	attrs := []observability.Attribute{
		observability.String(observability.AttrLLMProvider, providerID.String()),
		observability.String(observability.AttrReason, reason),
	}
	if level == "warn" {
		c.observer.Warn(ctx, "credential probe failed", attrs...)
		return
	}
	c.observer.Debug(ctx, "credential probe failed", attrs...)
}
