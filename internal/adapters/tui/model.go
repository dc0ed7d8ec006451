// Package tui is the interactive generation page: a topic form, platform and
// style pickers, and the generated post with copy actions.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/jacai-cli/internal/application"
	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultCopiedFor = 2 * time.Second
	DefaultNoticeFor = 5 * time.Second
)

type Controller interface {
	Submit(ctx context.Context, request domain.GenerationRequest) application.Outcome
	Regenerate(ctx context.Context) application.Outcome
	Reset() error
	State() application.State
}

type Copier interface {
	Copy(ctx context.Context, field domain.Field) application.CopyOutcome
}

type Options struct {
	// CopiedFor is how long the "Copied!" indicator stays up.
	CopiedFor time.Duration
	// NoticeFor is how long an error notice stays up.
	NoticeFor time.Duration
}

type focusArea int

const (
	focusTopic focusArea = iota
	focusPlatform
	focusStyle
	focusCount
)

type outcomeMsg struct {
	outcome application.Outcome
}

type copiedMsg struct {
	outcome application.CopyOutcome
}

type copyRevertMsg struct {
	seq int
}

type noticeExpiredMsg struct {
	seq int
}

type Model struct {
	ctx        context.Context
	controller Controller
	copier     Copier
	opts       Options
	styles     styles
	keys       keyMap
	help       help.Model

	topic    textinput.Model
	spinner  spinner.Model
	focus    focusArea
	platform int
	style    int
	tab      int
	pending  bool

	copiedField domain.Field
	copySeq     int
	notice      string
	noticeSeq   int

	width    int
	quitting bool
}

func New(ctx context.Context, controller Controller, copier Copier, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.CopiedFor <= 0 {
		opts.CopiedFor = DefaultCopiedFor
	}
	if opts.NoticeFor <= 0 {
		opts.NoticeFor = DefaultNoticeFor
	}

	topic := textinput.New()
	topic.Placeholder = "What should the post be about?"
	topic.CharLimit = 200
	topic.Width = 48
	topic.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		ctx:        ctx,
		controller: controller,
		copier:     copier,
		opts:       opts,
		styles:     newStyles(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		topic:      topic,
		spinner:    s,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case outcomeMsg:
		return m.handleOutcome(msg.outcome)
	case copiedMsg:
		return m.handleCopied(msg.outcome)
	case copyRevertMsg:
		if msg.seq == m.copySeq {
			m.copiedField = ""
		}
		return m, nil
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateTopic(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1), nil
	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1), nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Regenerate):
		return m.regenerate()
	case key.Matches(msg, m.keys.New):
		return m.reset()
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % len(domain.Fields())
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, m.copy(domain.Fields()[m.tab])
	}

	switch m.focus {
	case focusPlatform:
		m.platform = m.cycle(m.platform, len(domain.Platforms()), msg)
		return m, nil
	case focusStyle:
		m.style = m.cycle(m.style, len(domain.Styles()), msg)
		return m, nil
	}

	return m.updateTopic(msg)
}

func (m Model) updateTopic(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.topic, cmd = m.topic.Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	m.focus = focusArea((int(m.focus) + delta + int(focusCount)) % int(focusCount))
	if m.focus == focusTopic {
		m.topic.Focus()
	} else {
		m.topic.Blur()
	}
	return m
}

// Request is the generation request the form currently describes.
func (m Model) Request() domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:    m.topic.Value(),
		Platform: domain.Platforms()[m.platform],
		Style:    domain.Styles()[m.style],
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}

	request := m.Request()
	m.pending = true
	ctx, controller := m.ctx, m.controller
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return outcomeMsg{outcome: controller.Submit(ctx, request)}
	})
}

func (m Model) regenerate() (tea.Model, tea.Cmd) {
	if m.pending || m.controller.State().LastResult == nil {
		return m, nil
	}

	m.pending = true
	ctx, controller := m.ctx, m.controller
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return outcomeMsg{outcome: controller.Regenerate(ctx)}
	})
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	if err := m.controller.Reset(); err != nil {
		return m.showNotice(noticeText(err))
	}

	m.topic.SetValue("")
	m.platform = 0
	m.style = 0
	m.tab = 0
	m.copiedField = ""
	m.focus = focusTopic
	m.topic.Focus()
	return m, nil
}

func (m Model) copy(field domain.Field) tea.Cmd {
	ctx, copier := m.ctx, m.copier
	return func() tea.Msg {
		return copiedMsg{outcome: copier.Copy(ctx, field)}
	}
}

func (m Model) handleOutcome(outcome application.Outcome) (tea.Model, tea.Cmd) {
	m.pending = false

	switch outcome.Kind {
	case application.OutcomeSuccess:
		m.tab = 0
		m.copiedField = ""
		return m, nil
	case application.OutcomeFailure:
		return m.showNotice(outcome.Reason)
	case application.OutcomeRejected:
		return m.showNotice(noticeText(outcome.Err))
	default:
		return m, nil
	}
}

func (m Model) handleCopied(outcome application.CopyOutcome) (tea.Model, tea.Cmd) {
	switch outcome.Kind {
	case application.CopyCopied:
		m.copiedField = outcome.Field
		m.copySeq++
		seq := m.copySeq
		return m, tea.Tick(m.opts.CopiedFor, func(time.Time) tea.Msg {
			return copyRevertMsg{seq: seq}
		})
	default:
		return m.showNotice(noticeText(outcome.Err))
	}
}

func (m Model) showNotice(text string) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(m.opts.NoticeFor, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func noticeText(err error) string {
	switch {
	case err == nil:
		return application.DefaultFailureReason
	case errors.Is(err, domain.ErrEmptyTopic):
		return "Enter a topic first."
	case errors.Is(err, domain.ErrRequestInFlight):
		return "A generation is already running."
	case errors.Is(err, domain.ErrNoContent):
		return "Nothing to copy yet."
	default:
		return err.Error()
	}
}

func (m Model) cycle(index, size int, msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, m.keys.Previous):
		return (index - 1 + size) % size
	case key.Matches(msg, m.keys.Next):
		return (index + 1) % size
	default:
		return index
	}
}

func Run(ctx context.Context, model Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(model, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
