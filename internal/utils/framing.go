package utils

import (
	"bytes"
	"log/slog"
)

// LineScanner splits a byte stream into newline-terminated frames. Frames are
// trimmed of surrounding whitespace and empty lines are dropped. Splitting only
// ever happens on '\n', so a multi-byte UTF-8 sequence cut by a read boundary
// stays intact in the buffer until the rest of it arrives.
type LineScanner struct {
	buffer []byte
}

// NewLineScanner returns an empty line-mode scanner.
func NewLineScanner() *LineScanner {
	return &LineScanner{}
}

// Feed appends chunk and returns every complete, non-empty line.
func (scanner *LineScanner) Feed(chunk []byte) []string {
	scanner.buffer = append(scanner.buffer, chunk...)

	var frames []string
	consumed := 0
	for {
		newline := bytes.IndexByte(scanner.buffer[consumed:], '\n')
		if newline < 0 {
			break
		}
		line := bytes.TrimSpace(scanner.buffer[consumed : consumed+newline])
		consumed += newline + 1
		if len(line) == 0 {
			continue
		}
		frames = append(frames, string(line))
	}

	scanner.consume(consumed)
	return frames
}

// Flush returns the final unterminated line, if any.
func (scanner *LineScanner) Flush() []string {
	rest := bytes.TrimSpace(scanner.buffer)
	scanner.buffer = scanner.buffer[:0]
	if len(rest) == 0 {
		return nil
	}
	return []string{string(rest)}
}

// Buffered reports the number of bytes waiting for a newline.
func (scanner *LineScanner) Buffered() int {
	return len(scanner.buffer)
}

// Reset discards buffered bytes.
func (scanner *LineScanner) Reset() {
	scanner.buffer = scanner.buffer[:0]
}

func (scanner *LineScanner) consume(n int) {
	if n == 0 {
		return
	}
	remaining := copy(scanner.buffer, scanner.buffer[n:])
	scanner.buffer = scanner.buffer[:remaining]
}

// JSONScanner extracts balanced top-level JSON values from a stream that has
// no per-frame delimiter. It tracks brace/bracket depth and string state
// (honoring backslash escapes) from the start of the buffer; a frame is
// produced each time depth returns to zero. Incomplete values stay buffered.
//
// Bytes in front of a value that are not '{' or '[' are discarded. Array
// separators (',', ']' and whitespace) are dropped silently; anything else is
// logged as skipped garbage.
type JSONScanner struct {
	buffer []byte

	// unwrapArray treats the first top-level '[' of the stream as an envelope
	// so each element is produced as its own frame.
	unwrapArray  bool
	envelopeOpen bool
	framesSeen   bool
}

// JSONScannerOption configures a JSONScanner.
type JSONScannerOption func(*JSONScanner)

// WithArrayEnvelope makes the scanner step inside the stream's outer array
// instead of waiting for the whole array to close.
func WithArrayEnvelope() JSONScannerOption {
	return func(scanner *JSONScanner) {
		scanner.unwrapArray = true
	}
}

// NewJSONScanner returns an empty balanced-JSON scanner.
func NewJSONScanner(opts ...JSONScannerOption) *JSONScanner {
	scanner := &JSONScanner{}
	for _, opt := range opts {
		opt(scanner)
	}
	return scanner
}

// Feed appends chunk and returns every complete top-level value.
func (scanner *JSONScanner) Feed(chunk []byte) []string {
	scanner.buffer = append(scanner.buffer, chunk...)

	var frames []string
	for {
		scanner.skipToValue()
		if len(scanner.buffer) == 0 {
			break
		}
		end, complete := balancedEnd(scanner.buffer)
		if !complete {
			break
		}
		frames = append(frames, string(scanner.buffer[:end]))
		scanner.framesSeen = true
		scanner.consume(end)
	}
	return frames
}

// Flush runs a last scan with no new input and returns any trailing value,
// complete or not, as a final frame attempt.
func (scanner *JSONScanner) Flush() []string {
	frames := scanner.Feed(nil)
	rest := bytes.TrimSpace(scanner.buffer)
	scanner.buffer = scanner.buffer[:0]
	if len(rest) > 0 {
		frames = append(frames, string(rest))
	}
	return frames
}

// Buffered reports the number of unconsumed bytes.
func (scanner *JSONScanner) Buffered() int {
	return len(scanner.buffer)
}

// Reset discards the buffer and the envelope state.
func (scanner *JSONScanner) Reset() {
	scanner.buffer = scanner.buffer[:0]
	scanner.envelopeOpen = false
	scanner.framesSeen = false
}

// skipToValue drops everything in front of the next '{' or '['.
func (scanner *JSONScanner) skipToValue() {
	garbage := 0
	index := 0

scan:
	for ; index < len(scanner.buffer); index++ {
		switch char := scanner.buffer[index]; char {
		case '{':
			break scan
		case '[':
			if scanner.unwrapArray && !scanner.envelopeOpen && !scanner.framesSeen {
				scanner.envelopeOpen = true
				continue
			}
			break scan
		case ']':
			if scanner.envelopeOpen {
				scanner.envelopeOpen = false
				continue
			}
			garbage++
		case ',', ' ', '\t', '\r', '\n':
		default:
			garbage++
		}
	}

	if garbage > 0 {
		slog.Warn("discarding unexpected bytes before JSON value",
			"bytes", garbage,
			"preview", TruncateString(string(scanner.buffer[:index]), 64),
		)
	}
	scanner.consume(index)
}

func (scanner *JSONScanner) consume(n int) {
	if n == 0 {
		return
	}
	remaining := copy(scanner.buffer, scanner.buffer[n:])
	scanner.buffer = scanner.buffer[:remaining]
}

// balancedEnd returns the offset just past the value that starts at buf[0],
// or false when the value is not complete yet.
func balancedEnd(buf []byte) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for index, char := range buf {
		if inString {
			switch {
			case escaped:
				escaped = false
			case char == '\\':
				escaped = true
			case char == '"':
				inString = false
			}
			continue
		}

		switch char {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return index + 1, true
			}
		}
	}
	return 0, false
}
