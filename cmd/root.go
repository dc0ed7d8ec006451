package cmd

import (
	"github.com/bnema/jacai-cli/internal/config"
	"github.com/spf13/cobra"
)

const (
	skipWireAnnotation      = "jacai/skip-wire"
	skipGeneratorAnnotation = "jacai/skip-generator"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string
	var provider string
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "jacai",
		Short:         "JACAI: generate social media posts from the terminal",
		Long:          "jacai generates a caption, hashtags and an image prompt for a topic, tailored to a platform and a writing style, and copies the pieces you want to the clipboard.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] == "true" {
				return nil
			}

			wired, err := wireApp(cmd.Context(), wireOptions{
				ConfigPath:     configPath,
				Provider:       provider,
				EnvFile:        config.DefaultEnvFile,
				Interactive:    cmd.Name() == "ui",
				LogWriter:      cmd.ErrOrStderr(),
				TerminalWriter: cmd.ErrOrStderr(),
				SkipGenerator:  cmd.Annotations[skipGeneratorAnnotation] == "true",
			})
			if err != nil {
				return err
			}

			*a = *wired
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/jacai/config.toml)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "Generation provider: http, openai or template")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlatformsCmd(),
		newGenerateCmd(a),
		newUICmd(a),
		newHistoryCmd(a),
		newHealthCmd(a),
		newKeyCmd(a),
	)

	return rootCmd
}

func skipWire() map[string]string {
	return map[string]string{skipWireAnnotation: "true"}
}

func skipGenerator() map[string]string {
	return map[string]string{skipGeneratorAnnotation: "true"}
}
