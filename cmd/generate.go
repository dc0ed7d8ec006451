package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	postadapter "github.com/bnema/jacai-cli/internal/adapters/render/post"
	"github.com/bnema/jacai-cli/internal/application"
	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/spf13/cobra"
)

const maxVariants = 10

var errInvalidVariants = fmt.Errorf("--variants must be between 1 and %d", maxVariants)

type generateOptions struct {
	topic     string
	platform  string
	style     string
	copyField string
	variants  int
	asJSON    bool
	noHistory bool
}

type generatedPostOutput struct {
	HistoryID   domain.HistoryID `json:"history_id,omitempty"`
	Topic       string           `json:"topic"`
	Platform    domain.Platform  `json:"platform"`
	Style       domain.Style     `json:"style"`
	Caption     string           `json:"caption"`
	Hashtags    string           `json:"hashtags"`
	ImagePrompt string           `json:"image_prompt"`
	Status      string           `json:"status"`
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a caption, hashtags and an image prompt for a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.topic, "topic", "", "What the post is about")
	cmd.Flags().StringVar(&opts.platform, "platform", string(domain.PlatformInstagram), "Target platform")
	cmd.Flags().StringVar(&opts.style, "style", string(domain.StyleProfessional), "Writing style")
	cmd.Flags().StringVar(&opts.copyField, "copy", "", "Copy a field of the last result: caption, hashtags or image_prompt")
	cmd.Flags().IntVar(&opts.variants, "variants", 1, "Number of posts to generate with the same parameters")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record results in the history")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts generateOptions) error {
	request, copyField, err := parseGenerateOptions(opts)
	if err != nil {
		return err
	}

	controller := a.newController()
	outputs := make([]generatedPostOutput, 0, opts.variants)

	for i := 0; i < opts.variants; i++ {
		step := func(ctx context.Context) application.Outcome {
			if i == 0 {
				return controller.Submit(ctx, request)
			}
			return controller.Regenerate(ctx)
		}

		outcome, err := runGenerateStep(cmd, opts, i, step)
		if err != nil {
			return err
		}
		if err := outcomeError(outcome, controller.State()); err != nil {
			return err
		}

		output := generatedPostOutput{
			Topic:       outcome.Request.Topic,
			Platform:    outcome.Request.Platform,
			Style:       outcome.Request.Style,
			Caption:     outcome.Post.Caption,
			Hashtags:    outcome.Post.Hashtags,
			ImagePrompt: outcome.Post.ImagePrompt,
			Status:      controller.State().StatusMessage,
		}

		if !opts.noHistory {
			entry, err := a.history.Record(cmd.Context(), outcome.Request, outcome.Post)
			if err != nil {
				return fmt.Errorf("record history entry: %w", err)
			}
			output.HistoryID = entry.ID
		}

		if !opts.asJSON {
			if err := writePost(cmd, a, outcome, output, variantNumber(opts.variants, i)); err != nil {
				return err
			}
		}
		outputs = append(outputs, output)
	}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(outputs); err != nil {
			return err
		}
	}

	if copyField != "" {
		return copyAndReport(cmd, a.newCopier(controller.Session()), copyField)
	}

	return nil
}

func parseGenerateOptions(opts generateOptions) (domain.GenerationRequest, domain.Field, error) {
	platform, err := domain.ParsePlatform(opts.platform)
	if err != nil {
		return domain.GenerationRequest{}, "", err
	}
	style, err := domain.ParseStyle(opts.style)
	if err != nil {
		return domain.GenerationRequest{}, "", err
	}
	if opts.variants < 1 || opts.variants > maxVariants {
		return domain.GenerationRequest{}, "", errInvalidVariants
	}

	var field domain.Field
	if opts.copyField != "" {
		field, err = domain.ParseField(opts.copyField)
		if err != nil {
			return domain.GenerationRequest{}, "", err
		}
	}

	return domain.GenerationRequest{Topic: opts.topic, Platform: platform, Style: style}, field, nil
}

func runGenerateStep(cmd *cobra.Command, opts generateOptions, index int, step func(context.Context) application.Outcome) (application.Outcome, error) {
	if opts.asJSON {
		return step(cmd.Context()), nil
	}

	label := application.StatusGenerating
	if opts.variants > 1 {
		label = fmt.Sprintf("%s (%d/%d)", label, index+1, opts.variants)
	}

	return runGenerateSpinner(cmd.Context(), cmd.ErrOrStderr(), label, step)
}

// outcomeError maps a non-successful outcome to the error the command returns.
func outcomeError(outcome application.Outcome, state application.State) error {
	switch outcome.Kind {
	case application.OutcomeSuccess:
		return nil
	case application.OutcomeFailure:
		if outcome.Err != nil {
			return fmt.Errorf("%s: %s: %w", state.StatusMessage, outcome.Reason, outcome.Err)
		}
		return fmt.Errorf("%s: %s", state.StatusMessage, outcome.Reason)
	case application.OutcomeRejected, application.OutcomeNotApplicable:
		if outcome.Err != nil {
			return outcome.Err
		}
		return errors.New(outcome.Kind.String())
	default:
		return fmt.Errorf("unexpected generation outcome %s", outcome.Kind)
	}
}

func writePost(cmd *cobra.Command, a *app, outcome application.Outcome, output generatedPostOutput, variant int) error {
	status := output.Status
	if output.HistoryID != "" {
		status = fmt.Sprintf("%s • saved as #%s", status, output.HistoryID)
	}

	rendered, err := a.postRenderer(outcome.Post, postadapter.RenderOptions{
		Request: outcome.Request,
		Status:  status,
		Variant: variant,
	})
	if err != nil {
		return fmt.Errorf("render post: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func copyAndReport(cmd *cobra.Command, copier *application.Copier, field domain.Field) error {
	outcome := copier.Copy(cmd.Context(), field)
	switch outcome.Kind {
	case application.CopyCopied:
		via := "clipboard"
		if outcome.ViaFallback {
			via = "terminal clipboard"
		}
		_, err := fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s to the %s\n", field.Label(), via)
		return err
	default:
		return outcome.Err
	}
}

func variantNumber(total, index int) int {
	if total <= 1 {
		return 0
	}
	return index + 1
}
