package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leofalp/aistream/internal/utils"
	"github.com/leofalp/aistream/providers/ai"
)

type streamOptions struct {
	provider        string
	model           string
	system          string
	maxTokens       int
	temperature     float64
	topP            float64
	thinkingBudget  int
	reasoningEffort string
	tokenParameter  string
	historyFile     string
	render          bool
	hideThinking    bool
}

func newStreamCmd(a *app) *cobra.Command {
	opts := &streamOptions{}

	cmd := &cobra.Command{
		Use:   "stream [prompt]",
		Short: "Stream a completion to stdout",
		Long: `Stream a completion to stdout as it is generated.

The prompt is read from stdin when it is omitted or "-". Interrupting with
Ctrl-C cancels the request and exits cleanly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			spec, err := opts.requestSpec(cmd, prompt)
			if err != nil {
				return err
			}
			return a.runStream(cmd, ai.ProviderID(opts.provider), spec, opts)
		},
	}

	opts.bindFlags(cmd)
	return cmd
}

func (opts *streamOptions) bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.provider, "provider", "p", ai.ProviderOpenAI.String(), "provider id")
	flags.StringVarP(&opts.model, "model", "m", "", "model id (default from credentials or provider config)")
	flags.StringVarP(&opts.system, "system", "s", "", "system prompt")
	flags.IntVar(&opts.maxTokens, "max-tokens", 1024, "output token limit")
	flags.Float64Var(&opts.temperature, "temperature", 0, "sampling temperature")
	flags.Float64Var(&opts.topP, "top-p", 0, "nucleus sampling mass")
	flags.IntVar(&opts.thinkingBudget, "thinking-budget", 0, "extended thinking budget in tokens (anthropic)")
	flags.StringVar(&opts.reasoningEffort, "reasoning-effort", "", "low, medium or high (openai reasoning models)")
	flags.StringVar(&opts.tokenParameter, "token-parameter", "", "override the wire name of the token limit field")
	flags.StringVar(&opts.historyFile, "history", "", "YAML file with earlier turns (list of role/content)")
	flags.BoolVar(&opts.render, "render", false, "render answers as markdown instead of printing raw chunks")
	flags.BoolVar(&opts.hideThinking, "hide-thinking", false, "do not print thinking chunks")
}

// readPrompt takes the prompt from args, or from stdin when there is none or
// it is "-".
func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("empty prompt")
	}
	return prompt, nil
}

// requestSpec builds the request. Optional sampling fields are only set when
// their flag was given.
func (opts *streamOptions) requestSpec(cmd *cobra.Command, prompt string) (ai.RequestSpec, error) {
	spec := ai.RequestSpec{
		Prompt:             prompt,
		Model:              opts.model,
		MaxTokens:          opts.maxTokens,
		SystemPrompt:       opts.system,
		TokenParameterName: opts.tokenParameter,
	}

	flags := cmd.Flags()
	if flags.Changed("temperature") {
		spec.Temperature = utils.Ptr(opts.temperature)
	}
	if flags.Changed("top-p") {
		spec.TopP = utils.Ptr(opts.topP)
	}
	if flags.Changed("thinking-budget") {
		spec.ThinkingBudget = utils.Ptr(opts.thinkingBudget)
	}

	effort, err := parseReasoningEffort(opts.reasoningEffort)
	if err != nil {
		return ai.RequestSpec{}, err
	}
	spec.ReasoningEffort = effort

	if opts.historyFile != "" {
		history, err := loadHistory(opts.historyFile)
		if err != nil {
			return ai.RequestSpec{}, err
		}
		spec.History = history
	}
	return spec, nil
}

func parseReasoningEffort(value string) (ai.ReasoningEffort, error) {
	switch effort := ai.ReasoningEffort(strings.ToLower(value)); effort {
	case ai.ReasoningEffortNone, ai.ReasoningEffortLow, ai.ReasoningEffortMedium, ai.ReasoningEffortHigh:
		return effort, nil
	default:
		return "", fmt.Errorf("unknown reasoning effort %q", value)
	}
}

type historyTurn struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// loadHistory reads a YAML list of turns, oldest first.
func loadHistory(path string) ([]ai.Turn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var entries []historyTurn
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", path, err)
	}

	turns := make([]ai.Turn, 0, len(entries))
	for i, entry := range entries {
		role := ai.Role(strings.ToLower(entry.Role))
		if role != ai.RoleUser && role != ai.RoleAssistant {
			return nil, fmt.Errorf("history %s: turn %d: unknown role %q", path, i, entry.Role)
		}
		turns = append(turns, ai.Turn{Role: role, Content: entry.Content})
	}
	return turns, nil
}

func (a *app) runStream(cmd *cobra.Command, provider ai.ProviderID, spec ai.RequestSpec, opts *streamOptions) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	p := newPrinter(out, cmd.ErrOrStderr(), !opts.render, !opts.hideThinking)
	if err := c.Stream(ctx, provider, spec, p.handle); err != nil {
		return err
	}

	if p.terminal().Error == ai.CancelledMessage {
		return nil
	}
	if opts.render {
		return renderMarkdown(out, p.answer())
	}
	return nil
}

func renderMarkdown(out io.Writer, content string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}
