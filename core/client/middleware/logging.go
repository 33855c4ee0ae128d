package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

// LogLevel controls how much detail the logging middleware emits per call.
type LogLevel int

const (
	// LogLevelMinimal logs the provider, model, session id and duration.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the history length, chunk count and content length.
	LogLevelStandard

	// LogLevelVerbose adds the prompt and the full content, truncated to 500
	// characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. Prompts and responses
	// may contain secrets or personal data.
	LogLevelVerbose
)

// NewLoggingMiddleware logs one entry when a call starts and one when its
// terminal event passes through. Failures are logged at error level and
// cancellations at info level. logger must not be nil.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.StreamMiddleware {
	return func(next client.StreamFunc) client.StreamFunc {
		return func(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
			logger.InfoContext(ctx, "llm stream", requestAttrs(call, level)...)

			start := time.Now()
			chunks := 0
			var terminal *ai.SinkEvent

			err := next(ctx, call, func(event ai.SinkEvent) {
				if event.Done {
					terminal = &event
				} else {
					chunks++
				}
				sink(event)
			})

			attrs := []any{
				slog.String("provider", call.Provider.String()),
				slog.String("model", call.Spec.Model),
				slog.String("session", call.SessionID),
				slog.Duration("duration", time.Since(start)),
			}
			if level >= LogLevelStandard {
				attrs = append(attrs, slog.Int("chunks", chunks))
				if terminal != nil {
					attrs = append(attrs, slog.Int("content_length", len(terminal.FullContent)))
				}
			}
			if level >= LogLevelVerbose && terminal != nil && terminal.FullContent != "" {
				attrs = append(attrs, slog.String("content", utils.TruncateStringDefault(terminal.FullContent)))
			}

			switch {
			case err != nil:
				logger.ErrorContext(ctx, "llm stream failed", append(attrs, slog.String("error", err.Error()))...)
			case terminal != nil && terminal.Error == ai.CancelledMessage:
				logger.InfoContext(ctx, "llm stream cancelled", attrs...)
			default:
				logger.InfoContext(ctx, "llm stream completed", attrs...)
			}
			return err
		}
	}
}

func requestAttrs(call client.StreamCall, level LogLevel) []any {
	attrs := []any{
		slog.String("provider", call.Provider.String()),
		slog.String("model", call.Spec.Model),
		slog.String("session", call.SessionID),
	}
	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.Int("history_count", len(call.Spec.History)),
			slog.Int("max_tokens", call.Spec.MaxTokens),
		)
	}
	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("prompt", utils.TruncateStringDefault(call.Spec.Prompt)))
	}
	return attrs
}
