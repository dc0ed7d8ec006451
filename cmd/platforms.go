package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/spf13/cobra"
)

type platformsOutput struct {
	Platforms []domain.Platform `json:"platforms"`
	Styles    []domain.Style    `json:"styles"`
	Fields    []domain.Field    `json:"fields"`
}

func newPlatformsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "platforms",
		Short:       "List supported platforms, styles and copyable fields",
		Args:        cobra.NoArgs,
		Annotations: skipWire(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			output := platformsOutput{
				Platforms: domain.Platforms(),
				Styles:    domain.Styles(),
				Fields:    domain.Fields(),
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(output)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "platforms: %s\nstyles: %s\nfields: %s\n",
				joinValues(output.Platforms),
				joinValues(output.Styles),
				joinValues(output.Fields),
			)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, string(value))
	}
	return strings.Join(parts, ", ")
}
