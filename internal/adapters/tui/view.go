package tui

import (
	"fmt"
	"strings"

	postview "github.com/bnema/jacai-cli/internal/adapters/render/post"
	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.controller.State()
	s := m.styles

	sections := []string{
		s.title.Render("JACAI") + " " + s.subtitle.Render("AI social media posts"),
		"",
		m.fieldLine(focusTopic, "Topic", m.topic.View()),
		m.fieldLine(focusPlatform, "Platform", picker(string(domain.Platforms()[m.platform]))),
		m.fieldLine(focusStyle, "Style", picker(string(domain.Styles()[m.style]))),
		"",
		m.buttonView(),
	}

	if m.notice != "" {
		sections = append(sections, "", s.notice.Render("! "+m.notice))
	}

	sections = append(sections, "", s.status.Render("◷ "+state.StatusMessage))

	if state.LastResult != nil {
		sections = append(sections, "", m.resultView(*state.LastResult))
	}

	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) fieldLine(area focusArea, label, value string) string {
	labelStyle := m.styles.label
	if m.focus == area {
		labelStyle = m.styles.focused
	}
	return labelStyle.Render(label) + m.styles.choice.Render(value)
}

func (m Model) buttonView() string {
	if m.pending {
		return m.styles.disabled.Render(m.spinner.View() + " Generating...")
	}
	return m.styles.button.Render("Generate Content")
}

func (m Model) resultView(post domain.GeneratedPost) string {
	fields := domain.Fields()
	active := fields[m.tab]

	tabs := make([]string, 0, len(fields))
	for i, field := range fields {
		style := m.styles.tab
		if i == m.tab {
			style = m.styles.activeTab
		}
		tabs = append(tabs, style.Render(field.Label()))
	}

	copyHint := m.styles.help.Render("ctrl+y copy")
	if m.copiedField == active {
		copyHint = m.styles.copied.Render("✓ Copied!")
	}

	width := 60
	if m.width > 8 {
		width = min(m.width-6, 100)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, " "),
		"",
		postview.FieldView(post, active, width),
		"",
		copyHint,
	)
	return m.styles.card.Render(body)
}

func picker(value string) string {
	return fmt.Sprintf("‹ %s ›", value)
}
