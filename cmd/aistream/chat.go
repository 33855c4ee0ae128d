package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/memory"
	"github.com/leofalp/aistream/providers/memory/inmemory"
)

const chatHelp = "commands: /history lists recent turns, /undo drops the last exchange, /clear forgets the conversation, /exit quits"

// historyPreview is the number of turns /history prints.
const historyPreview = 6

func newChatCmd(a *app) *cobra.Command {
	opts := &streamOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Hold a multi-turn conversation on stdin",
		Long: `Read prompts line by line and stream each answer, sending the earlier
turns as history. Failed turns are not remembered.

` + chatHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := opts.requestSpec(cmd, "")
			if err != nil {
				return err
			}
			c, err := a.newClient()
			if err != nil {
				return err
			}

			store := inmemory.New()
			store.Append(cmd.Context(), spec.History...)
			spec.History = nil

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := &chatSession{
				client:   c,
				provider: ai.ProviderID(opts.provider),
				base:     spec,
				store:    store,
				opts:     opts,
				out:      cmd.OutOrStdout(),
				errOut:   cmd.ErrOrStderr(),
			}
			return session.run(ctx, cmd.InOrStdin())
		},
	}
	opts.bindFlags(cmd)
	return cmd
}

type chatSession struct {
	client   *client.Client
	provider ai.ProviderID
	base     ai.RequestSpec
	store    memory.Store
	opts     *streamOptions
	out      io.Writer
	errOut   io.Writer
}

// run reads prompts until EOF, /exit or cancellation of ctx.
func (s *chatSession) run(ctx context.Context, in io.Reader) error {
	promptStyle := lipgloss.NewRenderer(s.out).NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	scanner := bufio.NewScanner(in)

	for {
		_, _ = io.WriteString(s.out, promptStyle.Render("> "))
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			s.store.Clear(ctx)
			continue
		case "/undo":
			if err := s.undo(ctx); err != nil {
				return err
			}
			continue
		case "/history":
			if err := s.history(ctx); err != nil {
				return err
			}
			continue
		case "/help":
			fmt.Fprintln(s.out, chatHelp)
			continue
		}

		if err := s.turn(ctx, line); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// turn streams one answer. Stream failures are reported by the printer and
// leave the history unchanged; only errors that end the chat are returned.
func (s *chatSession) turn(ctx context.Context, prompt string) error {
	history, err := s.store.Turns(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	spec := s.base
	spec.Prompt = prompt
	spec.History = history

	p := newPrinter(s.out, s.errOut, !s.opts.render, !s.opts.hideThinking)
	streamErr := s.client.Stream(ctx, s.provider, spec, p.handle)
	if streamErr != nil || p.terminal().Error != "" {
		return nil
	}

	answer := p.answer()
	if s.opts.render {
		if err := renderMarkdown(s.out, answer); err != nil {
			return err
		}
	}
	s.store.Append(ctx,
		ai.Turn{Role: ai.RoleUser, Content: prompt},
		ai.Turn{Role: ai.RoleAssistant, Content: answer},
	)
	return nil
}

// undo drops the newest user/assistant exchange.
func (s *chatSession) undo(ctx context.Context) error {
	for range 2 {
		if _, err := s.store.PopLast(ctx); err != nil {
			return fmt.Errorf("undo: %w", err)
		}
	}
	return nil
}

// history prints the number of stored turns and the newest few of them.
func (s *chatSession) history(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	recent, err := s.store.Last(ctx, historyPreview)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	fmt.Fprintf(s.out, "%d turns stored\n", count)
	for _, turn := range recent {
		fmt.Fprintf(s.out, "  %s: %s\n", turn.Role, utils.TruncateString(strings.Join(strings.Fields(turn.Content), " "), 80))
	}
	return nil
}
