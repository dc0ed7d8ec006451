package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/jacai-cli/internal/config"
	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the generation service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.Provider != config.ProviderHTTP {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "provider %s does not use the generation service\n", a.config.Provider)
				return err
			}

			status, err := a.service.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("generation service at %s: %w", a.config.Service.URL, err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}

			line := fmt.Sprintf("%s: %s", a.config.Service.URL, status.Status)
			if status.Service != "" {
				line = fmt.Sprintf("%s (%s", line, status.Service)
				if status.Version != "" {
					line += " " + status.Version
				}
				line += ")"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
