package cmd

import (
	"github.com/bnema/jacai-cli/internal/adapters/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newUICmd(a *app) *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive generation page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			controller := a.newController()
			copier := a.newCopier(controller.Session())

			var page tui.Controller = controller
			if !noHistory {
				page = historyController{Controller: controller, history: a.history, logger: a.logger}
			}

			model := tui.New(cmd.Context(), page, copier, tui.Options{})
			return tui.Run(cmd.Context(), model,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record results in the history")

	return cmd
}
