package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/core/client/middleware"
	"github.com/leofalp/aistream/internal/config"
	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/observability"
	"github.com/leofalp/aistream/providers/observability/otelobs"
	"github.com/leofalp/aistream/providers/observability/slogobs"
)

const defaultEnvFile = ".env"

// app holds the state shared by every command. It is filled in by setup,
// which runs before any command body.
type app struct {
	configPath    string
	envFile       string
	logLevel      string
	logFormat     string
	traceExporter string

	logger      *slog.Logger
	observer    observability.Provider
	shutdown    func(context.Context) error
	file        *config.FileProvider
	credentials ai.CredentialProvider
	settings    config.ClientSettings
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "aistream",
		Short:         "Stream LLM completions from OpenAI, Anthropic, Gemini, DeepSeek and Perplexity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", os.Getenv("AISTREAM_CONFIG"), "YAML config file")
	flags.StringVar(&a.envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")
	flags.StringVar(&a.logLevel, "log-level", "", "trace, debug, info, warn or error (default from AISTREAM_LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "compact, pretty or json (default from AISTREAM_LOG_FORMAT)")
	flags.StringVar(&a.traceExporter, "trace", "none", "trace exporter: none or stdout")

	root.AddCommand(
		newStreamCmd(a),
		newChatCmd(a),
		newValidateCmd(a),
		newModelsCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(stderr io.Writer) error {
	if err := loadEnvFile(a.envFile); err != nil {
		return err
	}

	format := slogobs.FormatFromEnv()
	if a.logFormat != "" {
		format = slogobs.ParseFormat(a.logFormat)
	}
	level := slogobs.LevelFromEnv()
	if a.logLevel != "" {
		level = slogobs.ParseLevel(a.logLevel)
	}
	logs := slogobs.New(
		slogobs.WithFormat(format),
		slogobs.WithLevel(level),
		slogobs.WithOutput(stderr),
	)
	a.logger = logs.Logger()
	a.observer = logs
	// Package-level slog calls in the dialects and scanners follow the flags too.
	slog.SetDefault(a.logger)

	tracerProvider, shutdown, err := otelobs.Setup(a.traceExporter, stderr)
	if err != nil {
		return err
	}
	a.shutdown = shutdown
	if a.traceExporter != "" && a.traceExporter != "none" {
		a.observer = otelobs.New(tracerProvider, logs)
	}

	env := config.NewEnvProvider()
	if a.configPath == "" {
		a.credentials = env
		return nil
	}
	file, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	a.file = file
	a.credentials = config.Chain{file, env}
	a.settings = file.Settings()
	return nil
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing default file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (a *app) newClient() (*client.Client, error) {
	return client.New(a.credentials,
		client.WithObserver(a.observer),
		client.WithMiddleware(buildMiddlewares(a.settings, a.logger)...),
	)
}

// buildMiddlewares returns the chain outermost first. Disabled settings add
// nothing; logging is always present.
func buildMiddlewares(settings config.ClientSettings, logger *slog.Logger) []client.StreamMiddleware {
	level := middleware.LogLevelStandard
	if logger.Enabled(context.Background(), slogobs.LevelTrace) {
		level = middleware.LogLevelVerbose
	}

	chain := []client.StreamMiddleware{middleware.NewLoggingMiddleware(logger, level)}
	if settings.RateLimit.RPS > 0 {
		var opts []middleware.RateLimitOption
		if settings.RateLimit.FailFast {
			opts = append(opts, middleware.WithFailFast())
		}
		chain = append(chain, middleware.NewRateLimit(settings.RateLimit.RPS, settings.RateLimit.Burst, opts...))
	}
	if settings.Breaker.MaxFailures > 0 {
		chain = append(chain, middleware.NewCircuitBreaker(middleware.BreakerConfig{
			MaxFailures: settings.Breaker.MaxFailures,
			Timeout:     settings.Breaker.Timeout,
			Logger:      logger,
		}))
	}
	if settings.Timeout > 0 {
		chain = append(chain, middleware.NewTimeoutMiddleware(settings.Timeout))
	}
	return chain
}
