package post

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	body    lipgloss.Style
	tags    lipgloss.Style
	prompt  lipgloss.Style
	section lipgloss.Style
	status  lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		tags:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		prompt:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
		section: lipgloss.NewStyle().MarginTop(1),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
