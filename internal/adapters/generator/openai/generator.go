// Package openai generates posts with a chat completion from the OpenAI API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You write social media posts. Reply with a single JSON object with the string fields " +
	`"caption", "hashtags" and "image_prompt". Hashtags are 8-10 tags separated by spaces, each starting with #. ` +
	"The image prompt describes colors, composition and mood in at most 100 words. Do not wrap the JSON in markdown."

type Settings struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type completeFunc func(ctx context.Context, system, user string) (string, error)

type Generator struct {
	complete completeFunc
}

var _ ports.Generator = (*Generator)(nil)

func NewGenerator(settings Settings) (*Generator, error) {
	if settings.APIKey == "" {
		return nil, errors.New("openai api key missing; set openai.api_key")
	}
	if settings.Model == "" {
		return nil, errors.New("openai model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(settings.APIKey)}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	if settings.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(settings.HTTPClient))
	}

	client := openai.NewClient(opts...)
	model := settings.Model

	return &Generator{
		complete: func(ctx context.Context, system, user string) (string, error) {
			resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(system),
					openai.UserMessage(user),
				},
			})
			if err != nil {
				return "", err
			}
			if len(resp.Choices) == 0 {
				return "", errors.New("openai: empty choices")
			}
			return resp.Choices[0].Message.Content, nil
		},
	}, nil
}

type postPayload struct {
	Caption     string `json:"caption"`
	Hashtags    string `json:"hashtags"`
	ImagePrompt string `json:"image_prompt"`
}

// Generate maps SDK errors to transport failures and unusable model output to
// a service-reported failure.
func (g *Generator) Generate(ctx context.Context, request domain.GenerationRequest) (ports.GenerationResponse, error) {
	content, err := g.complete(ctx, systemPrompt, userPrompt(request))
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}

	var payload postPayload
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return ports.GenerationResponse{Success: false, Error: "model returned malformed content"}, nil
	}
	if strings.TrimSpace(payload.Caption) == "" {
		return ports.GenerationResponse{Success: false, Error: "model returned an empty caption"}, nil
	}

	return ports.GenerationResponse{
		Success: true,
		Post: &domain.GeneratedPost{
			Caption:     strings.TrimSpace(payload.Caption),
			Hashtags:    strings.TrimSpace(payload.Hashtags),
			ImagePrompt: strings.TrimSpace(payload.ImagePrompt),
		},
	}, nil
}

func userPrompt(request domain.GenerationRequest) string {
	return fmt.Sprintf("Create an engaging %s post for %s about %q. Match the platform's tone, length and conventions.",
		request.Style, request.Platform, request.Topic)
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
