package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// Format selects how the handler renders a record.
type Format string

const (
	// FormatCompact writes one line per record: time, level, message and the
	// attributes as sorted key=value pairs.
	FormatCompact Format = "compact"

	// FormatPretty writes the message line followed by one indented line per
	// attribute.
	FormatPretty Format = "pretty"

	// FormatJSON delegates to slog's JSON handler.
	FormatJSON Format = "json"
)

// LevelTrace sits below slog.LevelDebug and is used for per-frame logging.
const LevelTrace = slog.LevelDebug - 4

// ParseFormat maps a case-insensitive name to a Format. Unknown names fall back
// to FormatCompact.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPretty:
		return FormatPretty
	case FormatJSON:
		return FormatJSON
	default:
		return FormatCompact
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// ParseLevel maps a case-insensitive level name to a slog.Level. "warning" is
// accepted as an alias of "warn"; unknown names fall back to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FormatFromEnv reads AISTREAM_LOG_FORMAT, then LOG_FORMAT.
func FormatFromEnv() Format {
	return ParseFormat(firstEnv("AISTREAM_LOG_FORMAT", "LOG_FORMAT"))
}

// LevelFromEnv reads AISTREAM_LOG_LEVEL, then LOG_LEVEL.
func LevelFromEnv() slog.Level {
	return ParseLevel(firstEnv("AISTREAM_LOG_LEVEL", "LOG_LEVEL"))
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
