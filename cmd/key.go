package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/jacai-cli/internal/application"
	"github.com/spf13/cobra"
)

func newKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Store API keys outside the config file",
		Long:  "Store the OpenAI or generation service API key in pass, falling back to private files under ~/.config/jacai/secrets.",
	}

	cmd.AddCommand(
		newKeySetCmd(a),
		newKeyDeleteCmd(a),
	)

	return cmd
}

func newKeySetCmd(a *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:       "set openai|service",
		Short:     "Store an API key (read from stdin unless --value is given)",
		Args:        cobra.ExactArgs(1),
		ValidArgs:   credentialNames(),
		Annotations: skipGenerator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential, err := application.ParseCredential(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("value") {
				value, err = readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			if err := a.credentials.Set(cmd.Context(), credential, value); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s api key\n", credential)
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "API key value (visible in shell history; prefer stdin)")

	return cmd
}

func newKeyDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "delete openai|service",
		Short:     "Delete a stored API key",
		Args:        cobra.ExactArgs(1),
		ValidArgs:   credentialNames(),
		Annotations: skipGenerator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential, err := application.ParseCredential(args[0])
			if err != nil {
				return err
			}

			if err := a.credentials.Delete(cmd.Context(), credential); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s api key\n", credential)
			return err
		},
	}
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read api key from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func credentialNames() []string {
	names := make([]string, 0, len(application.Credentials()))
	for _, credential := range application.Credentials() {
		names = append(names, string(credential))
	}
	return names
}
