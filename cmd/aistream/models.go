package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/providers/ai"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models [provider...]",
		Short: "List the default and known models per provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := client.NewDefaultRegistry().IDs()
			if len(args) > 0 {
				ids = make([]ai.ProviderID, len(args))
				for i, arg := range args {
					ids[i] = ai.ProviderID(arg)
				}
			}

			configs := make(map[string]ai.ProviderConfig, len(ids))
			for _, id := range ids {
				cfg, err := a.credentials.ProviderConfig(id)
				if err != nil {
					return fmt.Errorf("provider config for %s: %w", id, err)
				}
				configs[id.String()] = cfg
			}
			return writeYAML(cmd.OutOrStdout(), configs)
		},
	}
}

func writeYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}
