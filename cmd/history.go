package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	postadapter "github.com/bnema/jacai-cli/internal/adapters/render/post"
	"github.com/bnema/jacai-cli/internal/application"
	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const (
	topicColumnWidth = 40
	latestRef        = "latest"
)

type historyEntryOutput struct {
	ID          domain.HistoryID `json:"id"`
	CreatedAt   string           `json:"created_at"`
	Topic       string           `json:"topic"`
	Platform    domain.Platform  `json:"platform"`
	Style       domain.Style     `json:"style"`
	Caption     string           `json:"caption"`
	Hashtags    string           `json:"hashtags"`
	ImagePrompt string           `json:"image_prompt"`
}

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and copy previously generated posts",
	}

	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
		newHistoryCopyCmd(a),
	)

	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List generated posts, newest first",
		Args:        cobra.NoArgs,
		Annotations: skipGenerator(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.history.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				outputs := make([]historyEntryOutput, 0, len(entries))
				for _, entry := range entries {
					outputs = append(outputs, toHistoryOutput(entry))
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outputs)
			}

			if len(entries) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no posts generated yet")
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderColumn(false).
				Headers("ID", "CREATED", "PLATFORM", "STYLE", "TOPIC")
			for _, entry := range entries {
				t.Row(
					string(entry.ID),
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					string(entry.Request.Platform),
					string(entry.Request.Style),
					truncate(entry.Request.Topic, topicColumnWidth),
				)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "show ID|latest",
		Short:       "Show a generated post",
		Args:        cobra.ExactArgs(1),
		Annotations: skipGenerator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookupEntry(cmd, a, args[0])
			if err != nil {
				return err
			}

			rendered, err := a.postRenderer(entry.Post, postadapter.RenderOptions{
				Request: entry.Request,
				Status:  fmt.Sprintf("#%s • %s", entry.ID, entry.CreatedAt.Local().Format("2006-01-02 15:04")),
			})
			if err != nil {
				return fmt.Errorf("render post: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newHistoryCopyCmd(a *app) *cobra.Command {
	var fieldName string

	cmd := &cobra.Command{
		Use:         "copy ID|latest",
		Short:       "Copy a field of a generated post to the clipboard",
		Args:        cobra.ExactArgs(1),
		Annotations: skipGenerator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := domain.ParseField(fieldName)
			if err != nil {
				return err
			}

			entry, err := lookupEntry(cmd, a, args[0])
			if err != nil {
				return err
			}

			return copyAndReport(cmd, a.newCopier(application.StaticResult(entry.Post)), field)
		},
	}

	cmd.Flags().StringVar(&fieldName, "field", string(domain.FieldCaption), "Field to copy: caption, hashtags or image_prompt")

	return cmd
}

func lookupEntry(cmd *cobra.Command, a *app, ref string) (domain.HistoryEntry, error) {
	var (
		entry domain.HistoryEntry
		err   error
	)
	if ref == latestRef {
		entry, err = a.history.Latest(cmd.Context())
	} else {
		entry, err = a.history.Get(cmd.Context(), domain.HistoryID(ref))
	}

	if application.IsNotFound(err) {
		return domain.HistoryEntry{}, fmt.Errorf("%w; run \"jacai history list\" to see saved posts", err)
	}
	return entry, err
}

func toHistoryOutput(entry domain.HistoryEntry) historyEntryOutput {
	return historyEntryOutput{
		ID:          entry.ID,
		CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339),
		Topic:       entry.Request.Topic,
		Platform:    entry.Request.Platform,
		Style:       entry.Request.Style,
		Caption:     entry.Post.Caption,
		Hashtags:    entry.Post.Hashtags,
		ImagePrompt: entry.Post.ImagePrompt,
	}
}

func truncate(value string, width int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}
