package slogobs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04:05"

// HandlerOptions configures NewHandler.
type HandlerOptions struct {
	Format Format
	Level  slog.Level
	Output io.Writer
	Colors bool
}

// NewHandler returns a slog.Handler for the requested format. FormatJSON uses
// slog's own JSON handler; the other two are rendered by a text handler.
func NewHandler(opts HandlerOptions) slog.Handler {
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	if opts.Format == FormatJSON {
		return slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{
			Level:       opts.Level,
			ReplaceAttr: replaceLevelName,
		})
	}

	handler := &textHandler{
		shared: &textOutput{writer: opts.Output},
		pretty: opts.Format == FormatPretty,
		level:  opts.Level,
	}
	if opts.Colors {
		handler.styles = newLevelStyles(lipgloss.NewRenderer(opts.Output))
	}
	return handler
}

// textOutput is shared by every handler derived through WithAttrs/WithGroup so
// concurrent records never interleave.
type textOutput struct {
	mu     sync.Mutex
	writer io.Writer
}

type textHandler struct {
	shared *textOutput
	pretty bool
	level  slog.Level
	styles *levelStyles
	attrs  []slog.Attr
	prefix string
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefix + attr.Key, Value: attr.Value})
	}
	return &clone
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *textHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make(map[string]string, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		flatten(fields, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		flatten(fields, h.prefix, attr)
		return true
	})

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var line strings.Builder
	line.WriteString(record.Time.Format(timeLayout))
	line.WriteByte(' ')
	line.WriteString(h.renderLevel(record.Level))
	line.WriteByte(' ')
	line.WriteString(record.Message)

	if h.pretty {
		line.WriteByte('\n')
		for index, key := range keys {
			branch := "├─"
			if index == len(keys)-1 {
				branch = "└─"
			}
			fmt.Fprintf(&line, "    %s %s: %s\n", branch, key, fields[key])
		}
	} else {
		for _, key := range keys {
			fmt.Fprintf(&line, " %s=%s", key, quoteIfNeeded(fields[key]))
		}
		line.WriteByte('\n')
	}

	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	_, err := io.WriteString(h.shared.writer, line.String())
	return err
}

func (h *textHandler) renderLevel(level slog.Level) string {
	name := fmt.Sprintf("%-5s", levelName(level))
	if h.styles == nil {
		return name
	}
	return h.styles.forLevel(level).Render(name)
}

// flatten expands group attributes into dotted keys.
func flatten(fields map[string]string, prefix string, attr slog.Attr) {
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = prefix + attr.Key + "."
		}
		for _, member := range value.Group() {
			flatten(fields, groupPrefix, member)
		}
		return
	}
	if attr.Key == "" {
		return
	}
	fields[prefix+attr.Key] = value.String()
}

func quoteIfNeeded(value string) string {
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		return fmt.Sprintf("%q", value)
	}
	return value
}

func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// replaceLevelName keeps TRACE readable in JSON output instead of "DEBUG-4".
func replaceLevelName(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok {
			attr.Value = slog.StringValue(levelName(level))
		}
	}
	return attr
}

type levelStyles struct {
	trace, debug, info, warn, err lipgloss.Style
}

func newLevelStyles(renderer *lipgloss.Renderer) *levelStyles {
	base := renderer.NewStyle().Bold(true)
	return &levelStyles{
		trace: base.Foreground(lipgloss.Color("8")),
		debug: base.Foreground(lipgloss.Color("4")),
		info:  base.Foreground(lipgloss.Color("2")),
		warn:  base.Foreground(lipgloss.Color("3")),
		err:   base.Foreground(lipgloss.Color("1")),
	}
}

func (s *levelStyles) forLevel(level slog.Level) lipgloss.Style {
	switch {
	case level < slog.LevelDebug:
		return s.trace
	case level < slog.LevelInfo:
		return s.debug
	case level < slog.LevelWarn:
		return s.info
	case level < slog.LevelError:
		return s.warn
	default:
		return s.err
	}
}
