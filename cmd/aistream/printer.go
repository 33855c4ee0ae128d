package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/leofalp/aistream/providers/ai"
)

func errorStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
}

// printer is the sink of the stream command. Answer chunks go to out as they
// arrive; thinking chunks are dimmed. The terminal event is kept for the
// caller and reported on errOut when it carries an error.
type printer struct {
	out    io.Writer
	errOut io.Writer

	printContent  bool
	printThinking bool

	thinkingStyle lipgloss.Style
	noticeStyle   lipgloss.Style
	errStyle      lipgloss.Style

	mu         sync.Mutex
	inThinking bool
	wroteAny   bool
	text       strings.Builder
	final      ai.SinkEvent
}

func newPrinter(out, errOut io.Writer, printContent, printThinking bool) *printer {
	renderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)
	return &printer{
		out:           out,
		errOut:        errOut,
		printContent:  printContent,
		printThinking: printThinking,
		thinkingStyle: renderer.NewStyle().Faint(true).Italic(true),
		noticeStyle:   errRenderer.NewStyle().Foreground(lipgloss.Color("11")),
		errStyle:      errorStyle(errOut),
	}
}

func (p *printer) handle(event ai.SinkEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if event.Done {
		p.finish(event)
		return
	}

	if !event.Thinking {
		p.text.WriteString(event.Chunk)
	}

	switch {
	case event.Thinking && p.printThinking:
		p.inThinking = true
		p.write(p.thinkingStyle.Render(event.Chunk))
	case !event.Thinking && p.printContent:
		if p.inThinking {
			p.inThinking = false
			p.write("\n\n")
		}
		p.write(event.Chunk)
	}
}

func (p *printer) finish(event ai.SinkEvent) {
	p.final = event
	if p.wroteAny {
		p.write("\n")
	}

	switch event.Error {
	case "":
	case ai.CancelledMessage:
		fmt.Fprintln(p.errOut, p.noticeStyle.Render("cancelled"))
	default:
		fmt.Fprintln(p.errOut, p.errStyle.Render(fmt.Sprintf("stream failed (%s): %s", event.Model, event.Error)))
	}
}

func (p *printer) write(s string) {
	if s == "" {
		return
	}
	p.wroteAny = true
	_, _ = io.WriteString(p.out, s)
}

// answer returns the content chunks received so far, without thinking text.
func (p *printer) answer() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text.String()
}

// terminal returns the terminal event, or the zero event if none arrived.
func (p *printer) terminal() ai.SinkEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.final
}
