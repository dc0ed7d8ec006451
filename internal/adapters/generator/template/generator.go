// Package template produces posts offline from fixed per-platform templates.
package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
)

type platformTemplate struct {
	caption  string
	hashtags string
}

var templates = map[domain.Platform]platformTemplate{
	domain.PlatformInstagram: {
		caption:  "🚀 %s - Perfect for your Instagram feed! ✨\n\nShare your thoughts below 👇",
		hashtags: "#content #social #marketing #instagram #digital #brand #creative #engagement",
	},
	domain.PlatformTwitter: {
		caption:  "Quick thoughts on %s 🧵\n\nWhat's your take?",
		hashtags: "#content #social #marketing #twitter #digital",
	},
	domain.PlatformLinkedIn: {
		caption:  "Professional insights on %s.\n\nLet's discuss the implications for our industry. What are your thoughts?",
		hashtags: "#professional #business #networking #linkedin #growth #industry",
	},
	domain.PlatformFacebook: {
		caption:  "Let's talk about %s today!\n\nWhat's your experience with this? Share in the comments!",
		hashtags: "#social #community #discussion #engagement #facebook",
	},
	domain.PlatformTikTok: {
		caption:  "POV: you just discovered %s 👀\n\nWatch till the end!",
		hashtags: "#fyp #foryou #tiktok #viral #trending",
	},
}

type Generator struct{}

var _ ports.Generator = Generator{}

func (Generator) Generate(ctx context.Context, request domain.GenerationRequest) (ports.GenerationResponse, error) {
	if err := ctx.Err(); err != nil {
		return ports.GenerationResponse{}, err
	}

	tmpl, ok := templates[request.Platform]
	if !ok {
		return ports.GenerationResponse{Success: false, Error: fmt.Sprintf("no template for platform %q", request.Platform)}, nil
	}

	post := domain.GeneratedPost{
		Caption:     applyStyle(fmt.Sprintf(tmpl.caption, request.Topic), request.Style),
		Hashtags:    topicHashtag(request.Topic) + " " + tmpl.hashtags,
		ImagePrompt: fmt.Sprintf("Create a %s style image about %s suitable for %s. Focus on visual elements, colors, and composition.", request.Style, request.Topic, request.Platform),
	}

	return ports.GenerationResponse{Success: true, Post: &post}, nil
}

func applyStyle(caption string, style domain.Style) string {
	switch style {
	case domain.StyleCasual:
		return strings.Replace(caption, "Professional insights", "Casual thoughts", 1)
	case domain.StyleCreative:
		return "🎨 " + caption
	case domain.StyleMotivational:
		return "💪 " + caption + " You've got this!"
	case domain.StyleHumorous:
		return "😂 " + caption
	default:
		return caption
	}
}

func topicHashtag(topic string) string {
	var b strings.Builder
	for _, word := range strings.Fields(topic) {
		b.WriteString(strings.ToLower(word))
	}
	return "#" + b.String()
}
