package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/aistream/providers/ai"
)

var errInvalidCredentials = errors.New("credentials rejected")

func newValidateCmd(a *app) *cobra.Command {
	var provider, apiKey, model string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an API key with a minimal request",
		Long: `Send a minimal non-streaming request to check that an API key works.

Without --api-key the key is resolved the same way the stream command does.
The command exits non-zero when the key is rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := ai.ProviderID(provider)
			if apiKey == "" {
				creds, err := a.credentials.Credentials(id)
				if err != nil {
					return fmt.Errorf("credentials for %s: %w", id, err)
				}
				apiKey = creds.APIKey
				if model == "" {
					model = creds.Model
				}
			}

			c, err := a.newClient()
			if err != nil {
				return err
			}
			if !c.Validate(cmd.Context(), id, apiKey, model) {
				return fmt.Errorf("%s: %w", id, errInvalidCredentials)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", id)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&provider, "provider", "p", ai.ProviderOpenAI.String(), "provider id")
	flags.StringVar(&apiKey, "api-key", "", "key to check (default from configuration)")
	flags.StringVarP(&model, "model", "m", "", "model used for the probe request")
	return cmd
}
