package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/internal/config"
)

// resolvedConfig is what config show prints: the effective settings after the
// file, AISTREAM_ variables and plain provider variables are combined.
type resolvedConfig struct {
	Source    string                          `yaml:"source"`
	Providers map[string]config.ProviderEntry `yaml:"providers"`
	Client    config.ClientSettings           `yaml:"client"`
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	var reveal bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML with keys masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := a.resolve(reveal)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), resolved)
		},
	}
	show.Flags().BoolVar(&reveal, "reveal", false, "print API keys unmasked")

	cmd.AddCommand(show)
	return cmd
}

func (a *app) resolve(reveal bool) (resolvedConfig, error) {
	resolved := resolvedConfig{
		Source:    "environment",
		Providers: make(map[string]config.ProviderEntry),
		Client:    a.settings,
	}
	if a.file != nil {
		resolved.Source = a.file.Path()
	}

	for _, id := range client.NewDefaultRegistry().IDs() {
		creds, err := a.credentials.Credentials(id)
		if err != nil {
			return resolvedConfig{}, fmt.Errorf("credentials for %s: %w", id, err)
		}
		cfg, err := a.credentials.ProviderConfig(id)
		if err != nil {
			return resolvedConfig{}, fmt.Errorf("provider config for %s: %w", id, err)
		}

		key := creds.APIKey
		if !reveal {
			key = maskKey(key)
		}
		resolved.Providers[id.String()] = config.ProviderEntry{
			APIKey:       key,
			Model:        creds.Model,
			Endpoint:     cfg.Endpoint,
			DefaultModel: cfg.DefaultModel,
			Models:       cfg.Models,
		}
	}
	return resolved, nil
}

// maskKey keeps the last four characters of keys long enough to still be
// unguessable with them shown.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 12 {
		return strings.Repeat("*", 8)
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
