package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	label     lipgloss.Style
	focused   lipgloss.Style
	choice    lipgloss.Style
	button    lipgloss.Style
	disabled  lipgloss.Style
	notice    lipgloss.Style
	status    lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
	copied    lipgloss.Style
	help      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:     lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("245")),
		focused:   lipgloss.NewStyle().Width(10).Bold(true).Foreground(lipgloss.Color("39")),
		choice:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		button:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("69")).Padding(0, 1),
		disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("237")).Padding(0, 1),
		notice:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		activeTab: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		copied:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
