package post

import (
	"fmt"
	"strings"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Request domain.GenerationRequest
	Status  string
	// Variant numbers the result when several are rendered in a row; 0 hides it.
	Variant int
	Width   int
}

// FieldView renders a single field body, used by the interactive tabs.
func FieldView(post domain.GeneratedPost, field domain.Field, width int) string {
	return renderField(post, field, width, newStyles())
}

func renderView(post domain.GeneratedPost, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render(title(opts))}
	if header := headerLine(opts.Request); header != "" {
		lines = append(lines, s.header.Render(header))
	}

	for _, field := range domain.Fields() {
		section := lipgloss.JoinVertical(lipgloss.Left,
			s.label.Render(field.Label()),
			renderField(post, field, opts.Width, s),
		)
		lines = append(lines, s.section.Render(section))
	}

	if opts.Status != "" {
		lines = append(lines, s.section.Render(s.status.Render(opts.Status)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderField(post domain.GeneratedPost, field domain.Field, width int, s styles) string {
	text := strings.TrimSpace(post.Value(field))
	if text == "" {
		return s.empty.Render("(empty)")
	}

	style := s.body
	switch field {
	case domain.FieldHashtags:
		style = s.tags
	case domain.FieldImagePrompt:
		style = s.prompt
	}
	if width > 0 {
		style = style.Width(width)
	}

	return style.Render(text)
}

func title(opts RenderOptions) string {
	if opts.Variant > 0 {
		return fmt.Sprintf("Generated post #%d", opts.Variant)
	}
	return "Generated post"
}

func headerLine(request domain.GenerationRequest) string {
	parts := make([]string, 0, 3)
	if topic := strings.TrimSpace(request.Topic); topic != "" {
		parts = append(parts, fmt.Sprintf("topic: %s", topic))
	}
	if request.Platform != "" {
		parts = append(parts, fmt.Sprintf("platform: %s", request.Platform))
	}
	if request.Style != "" {
		parts = append(parts, fmt.Sprintf("style: %s", request.Style))
	}
	return strings.Join(parts, "  ")
}
