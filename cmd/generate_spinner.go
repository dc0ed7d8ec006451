package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/jacai-cli/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type generateDoneMsg struct {
	outcome application.Outcome
}

type generateSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	outcome application.Outcome
	done    bool
}

func newGenerateSpinnerModel(label string, run tea.Cmd) generateSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return generateSpinnerModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m generateSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m generateSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case generateDoneMsg:
		m.done = true
		m.outcome = msg.outcome
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m generateSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runGenerateSpinner shows label on output until run returns.
func runGenerateSpinner(ctx context.Context, output io.Writer, label string, run func(context.Context) application.Outcome) (application.Outcome, error) {
	runCmd := func() tea.Msg {
		return generateDoneMsg{outcome: run(ctx)}
	}

	p := tea.NewProgram(
		newGenerateSpinnerModel(label, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.Outcome{}, err
	}

	result, ok := finalModel.(generateSpinnerModel)
	if !ok {
		return application.Outcome{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.outcome, nil
}
