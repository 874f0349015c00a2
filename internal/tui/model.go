// Package tui is the terminal front end of the timed test.
package tui

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/bosserz/ged-assessment/internal/controller"
	"github.com/bosserz/ged-assessment/internal/render"
	"github.com/bosserz/ged-assessment/internal/scoring"
	"github.com/bosserz/ged-assessment/internal/session"
	"github.com/bosserz/ged-assessment/internal/timer"
	"github.com/bosserz/ged-assessment/models"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type phase int

const (
	phaseIdentity phase = iota
	phaseLoading
	phaseTest
	phaseSubmitting
	phaseResult
)

const (
	fieldName = iota
	fieldEmail
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	clockStyle    = lipgloss.NewStyle().Bold(true)
	clockLowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// Model is the bubbletea model of one test attempt.
type Model struct {
	ctx  context.Context
	ctrl *controller.Controller

	phase  phase
	inputs []textinput.Model
	focus  int

	spinner  spinner.Model
	clock    progress.Model
	viewport viewport.Model
	duration time.Duration

	sess        *session.Session
	questions   []models.Question
	answers     scoring.Answers
	current     int
	cursor      int
	autoSubmit  bool
	result      models.TestResult
	status      string
	err         error
	width       int
	height      int
	exportedTo  string
	reportReady bool
}

// New creates the model. duration is only used to draw the clock bar; the
// controller owns the actual countdown length.
func New(ctx context.Context, ctrl *controller.Controller, duration time.Duration) *Model {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.Prompt = "Name:  "
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email: "
	email.CharLimit = 254

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	clock := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"), progress.WithoutPercentage())
	clock.Width = 40

	return &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		inputs:   []textinput.Model{name, email},
		spinner:  s,
		clock:    clock,
		viewport: viewport.New(80, 20),
		duration: duration,
		answers:  scoring.Answers{},
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 5)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.phase != phaseLoading && m.phase != phaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case questionsLoadedMsg:
		return m.handleQuestionsLoaded(msg)

	case submittedMsg:
		return m.handleSubmitted(msg)

	case exportedMsg:
		m.exportedTo = msg.path
		m.err = msg.err
		switch {
		case msg.err != nil && msg.path != "":
			m.status = "Report saved to " + msg.path + " but the upload failed."
		case msg.err != nil:
			m.status = "Could not export the report."
		default:
			m.status = "Report saved to " + msg.path + " and uploaded."
			m.reportReady = true
		}
		return m, nil
	}

	if m.phase == phaseIdentity {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseIdentity:
		return m.handleIdentityKey(msg)
	case phaseTest:
		return m.handleTestKey(msg)
	case phaseResult:
		return m.handleResultKey(msg)
	}

	return m, nil
}

func (m *Model) handleIdentityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return m, m.focusField((m.focus + 1) % len(m.inputs))
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.focusField((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case tea.KeyEnter:
		if m.focus == fieldName && strings.TrimSpace(m.inputs[fieldEmail].Value()) == "" {
			return m, m.focusField(fieldEmail)
		}
		return m, m.start()
	}

	return m.updateInputs(msg)
}

func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

// start submits the identity form: the clock starts and the questions load.
func (m *Model) start() tea.Cmd {
	sess, err := m.ctrl.Start(m.inputs[fieldName].Value(), m.inputs[fieldEmail].Value(), func() {
		m.autoSubmit = true
	})
	if err != nil {
		m.err = err
		return nil
	}

	m.sess = sess
	m.err = nil
	m.phase = phaseLoading
	m.status = "Loading questions…"

	return tea.Batch(m.spinner.Tick, m.loadQuestions(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) loadQuestions() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		questions, err := m.ctrl.LoadQuestions(m.ctx, sess)
		return questionsLoadedMsg{questions: questions, err: err}
	}
}

func (m *Model) handleQuestionsLoaded(msg questionsLoadedMsg) (tea.Model, tea.Cmd) {
	if m.phase != phaseLoading {
		return m, nil
	}

	if msg.err != nil {
		m.err = msg.err
		m.status = "Could not load the questions. Press r to retry."
		m.phase = phaseTest
		return m, nil
	}

	m.questions = msg.questions
	m.phase = phaseTest
	m.status = ""
	m.err = nil
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.sess == nil || (m.phase != phaseLoading && m.phase != phaseTest) {
		return m, nil
	}

	m.sess.Timer.Tick()
	if m.autoSubmit {
		m.autoSubmit = false
		return m, m.submit(models.SubmitReasonTimeout)
	}

	return m, tick()
}

func (m *Model) handleTestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil && len(m.questions) == 0 {
		if msg.String() == "r" {
			m.phase = phaseLoading
			m.err = nil
			m.status = "Loading questions…"
			return m, tea.Batch(m.spinner.Tick, m.loadQuestions())
		}
		return m, nil
	}

	if len(m.questions) == 0 {
		if msg.String() == "ctrl+s" {
			return m, m.submit(models.SubmitReasonManual)
		}
		return m, nil
	}

	q := m.questions[m.current]

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case "left", "h", "shift+tab":
		m.goTo(m.current - 1)
	case "right", "l", "tab":
		m.goTo(m.current + 1)
	case "enter", " ":
		m.choose(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.choose(int(msg.Runes[0] - '1'))
	case "ctrl+s":
		if left := m.unanswered(); left > 0 {
			m.status = fmt.Sprintf("Please answer every question before submitting (%d left).", left)
			return m, nil
		}
		return m, m.submit(models.SubmitReasonManual)
	}

	return m, nil
}

// choose selects option i of the current question and moves on.
func (m *Model) choose(i int) {
	q := m.questions[m.current]
	if i < 0 || i >= len(q.Options) {
		return
	}

	m.answers[q.ID] = q.Options[i]
	m.status = ""
	m.goTo(m.current + 1)
}

func (m *Model) goTo(i int) {
	if i < 0 || i >= len(m.questions) {
		return
	}

	m.current = i
	m.cursor = 0

	q := m.questions[i]
	for j, opt := range q.Options {
		if m.answers[q.ID] == opt {
			m.cursor = j
		}
	}
}

func (m *Model) unanswered() int {
	left := 0
	for _, q := range m.questions {
		if m.answers[q.ID] == "" {
			left++
		}
	}

	return left
}

func (m *Model) submit(reason models.SubmitReason) tea.Cmd {
	m.phase = phaseSubmitting
	if reason == models.SubmitReasonTimeout {
		m.status = "Time is up! Submitting your answers…"
	} else {
		m.status = "Submitting your answers…"
	}

	sess := m.sess
	answers := maps.Clone(m.answers)

	return func() tea.Msg {
		result, err := m.ctrl.Submit(m.ctx, sess, answers, reason)
		return submittedMsg{result: result, err: err}
	}
}

func (m *Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, controller.ErrAlreadySubmitted) {
		return m, nil
	}

	m.result = msg.result
	m.phase = phaseResult
	m.err = msg.err
	if msg.err != nil {
		m.status = "Your result could not be sent to the server."
	} else {
		m.status = ""
	}

	m.viewport.SetContent(render.Summary(m.result) + "\n" + render.Feedback(m.result))
	m.viewport.GotoTop()

	return m, nil
}

func (m *Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "p":
		m.status = "Exporting report…"
		sess := m.sess
		return m, func() tea.Msg {
			path, err := m.ctrl.Export(m.ctx, sess)
			return exportedMsg{path: path, err: err}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GED English Pre-Test") + "\n\n")

	switch m.phase {
	case phaseIdentity:
		b.WriteString("Enter your details to start the test.\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View() + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("tab: next field • enter: start • ctrl+c: quit"))

	case phaseLoading, phaseSubmitting:
		b.WriteString(m.clockView() + "\n\n")
		b.WriteString(m.spinner.View() + " " + m.status)

	case phaseTest:
		b.WriteString(m.clockView() + "\n\n")
		b.WriteString(m.questionView())

	case phaseResult:
		b.WriteString(m.viewport.View() + "\n\n")
		b.WriteString(helpStyle.Render("↑/↓: scroll • p: export PDF • q: quit"))
	}

	if m.status != "" && m.phase != phaseLoading && m.phase != phaseSubmitting {
		b.WriteString("\n\n" + m.status)
	}
	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render("Error: "+m.err.Error()))
	}

	return b.String() + "\n"
}

func (m *Model) clockView() string {
	if m.sess == nil {
		return ""
	}

	remaining := m.sess.Timer.Remaining()
	style := clockStyle
	if remaining <= time.Minute {
		style = clockLowStyle
	}

	percent := 0.0
	if m.duration > 0 {
		percent = float64(remaining) / float64(m.duration)
	}

	return fmt.Sprintf("%s %s", style.Render("Time left: "+timer.Format(remaining)), m.clock.ViewAs(percent))
}

func (m *Model) questionView() string {
	if len(m.questions) == 0 {
		if m.err != nil {
			return ""
		}
		return "No questions were returned by the server.\n\n" + helpStyle.Render("ctrl+s: submit")
	}

	q := m.questions[m.current]
	var b strings.Builder

	fmt.Fprintf(&b, "Q%d of %d: %s\n\n", m.current+1, len(m.questions), q.Question)
	for i, opt := range q.Options {
		marker := "( )"
		if m.answers[q.ID] == opt {
			marker = "(•)"
		}

		line := fmt.Sprintf("%d. %s %s", i+1, marker, opt)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\nAnswered %d of %d\n", len(m.questions)-m.unanswered(), len(m.questions))
	b.WriteString(helpStyle.Render("↑/↓: move • enter/1-9: choose • ←/→: previous/next • ctrl+s: submit"))

	return b.String()
}
