package live

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizdeck/internal/question"
	"quizdeck/internal/quiz"
)

// Model renders the quiz in a terminal using Bubble Tea. Key presses are
// forwarded to the controller, which redraws through the Screen.
type Model struct {
	controller *quiz.Controller
	screen     *Screen
	keys       keyMap
	help       help.Model
	viewport   viewport.Model
	cursor     int
	status     string
	noColor    bool
	title      string
}

// Options configures the live UI model.
type Options struct {
	NoColor bool
	Title   string
}

// NewModel constructs a live UI model around a loaded controller.
func NewModel(controller *quiz.Controller, screen *Screen, opts Options) Model {
	title := opts.Title
	if title == "" {
		title = "quizdeck"
	}
	m := Model{
		controller: controller,
		screen:     screen,
		keys:       defaultKeyMap(),
		help:       help.New(),
		viewport:   viewport.New(80, 20),
		noColor:    opts.NoColor,
		title:      title,
	}
	m.refresh()
	return m
}

// Init has no startup command; the question set is already loaded.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		m.viewport.Width = typed.Width
		m.viewport.Height = max(typed.Height-4, 1)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the title, question list, status line and key help.
func (m Model) View() string {
	header := stylize(m.title+" "+m.progress(), m.noColor, lipgloss.Color("33"))
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = stylize(m.status, m.noColor, lipgloss.Color("244")) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.controller.Session() == nil {
		return m, nil
	}

	var err error
	submitted := false
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.screen.views))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.screen.views))
	case key.Matches(msg, m.keys.Prev):
		err = m.stepOption(-1)
	case key.Matches(msg, m.keys.Next):
		err = m.stepOption(1)
	case key.Matches(msg, m.keys.Pick):
		label, _ := question.ParseLabel(msg.String())
		err = m.controller.OnSelect(m.cursor, label)
	case key.Matches(msg, m.keys.Clear):
		err = m.controller.OnClear(m.cursor)
	case key.Matches(msg, m.keys.Submit):
		var result quiz.GradingResult
		result, err = m.controller.OnSubmit()
		if err == nil {
			submitted = true
			m.status = formatScore(result)
		}
	case key.Matches(msg, m.keys.Retry):
		err = m.controller.OnRetry()
	case key.Matches(msg, m.keys.Shuffle):
		if err = m.controller.OnReshuffle(); err == nil {
			m.cursor = 0
			m.status = "Questions shuffled."
		}
	}
	if err != nil {
		m.status = err.Error()
	}
	m.refresh()
	if submitted {
		m.viewport.GotoTop()
	}
	return m, nil
}

// stepOption moves the selection of the current question by delta options.
func (m Model) stepOption(delta int) error {
	if m.cursor >= len(m.screen.views) {
		return nil
	}
	options := m.screen.views[m.cursor].Options
	if len(options) == 0 {
		return nil
	}
	current := -1
	for i, option := range options {
		if option.Selected {
			current = i
		}
	}
	next := current + delta
	if current < 0 && delta < 0 {
		next = len(options) - 1
	}
	next = (next + len(options)) % len(options)
	return m.controller.OnSelect(m.cursor, options[next].Label)
}

// refresh redraws the viewport content and keeps the cursor question visible.
func (m *Model) refresh() {
	body, offsets := renderBody(m.screen, m.cursor, m.viewport.Width, m.noColor)
	m.viewport.SetContent(body)
	if m.cursor < len(offsets) {
		top := offsets[m.cursor]
		if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(top)
		}
	}
}

func (m Model) progress() string {
	session := m.controller.Session()
	if session == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(fmtInt(session.Answered()))
	b.WriteString("/")
	b.WriteString(fmtInt(session.Len()))
	b.WriteString(" answered | ")
	b.WriteString(session.Phase().String())
	return b.String()
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
