// Package tui is the interactive terminal front end: a prompt with
// history recall and tab completion over a command session, with typed
// render results displayed as ANSI in the scrollback.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"termfolio/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// commandDoneMsg carries a finished command back to Update. requestID lets
// Update discard results from superseded submissions: only the latest
// request may touch the screen.
type commandDoneMsg struct {
	requestID int
	res       term.Result
}

type urlOpenedMsg struct {
	err error
}

type model struct {
	session *term.Session

	input   string
	history []string
	histIdx int
	pending string

	lines  []string
	width  int
	height int

	requestID int
	busy      bool
	quitting  bool
}

func newModel(s *term.Session) model {
	m := model{
		session: s,
		width:   80,
		height:  24,
	}
	m.histIdx = 0
	m.lines = append(m.lines, mutedStyle.Render("Type 'help' to get started."))
	return m
}

// Run starts the interactive program over the session and blocks until
// the visitor quits.
func Run(s *term.Session) error {
	p := tea.NewProgram(newModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case commandDoneMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.busy = false
		return m.applyResult(msg.res)

	case urlOpenedMsg:
		if msg.err != nil {
			m.lines = append(m.lines, errorStyle.Render(msg.err.Error()))
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "tab":
		return m.complete()

	case "up":
		if m.histIdx > 0 {
			if m.histIdx == len(m.history) {
				m.pending = m.input
			}
			m.histIdx--
			m.input = m.history[m.histIdx]
		}
		return m, nil

	case "down":
		if m.histIdx < len(m.history) {
			m.histIdx++
			if m.histIdx == len(m.history) {
				m.input = m.pending
			} else {
				m.input = m.history[m.histIdx]
			}
		}
		return m, nil

	case "backspace":
		if m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case "ctrl+u":
		m.input = ""
		return m, nil

	case "ctrl+l":
		m.lines = nil
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.input += string(msg.Runes)
		if msg.Type == tea.KeySpace {
			m.input += " "
		}
	}
	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := m.input
	m.lines = append(m.lines, m.promptLine()+line)
	m.input = ""
	m.pending = ""

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		m.histIdx = len(m.history)
		return m, nil
	}
	if trimmed == "exit" || trimmed == "quit" {
		m.quitting = true
		return m, tea.Quit
	}

	if len(m.history) == 0 || m.history[len(m.history)-1] != trimmed {
		m.history = append(m.history, trimmed)
	}
	m.histIdx = len(m.history)

	m.requestID++
	m.busy = true
	id := m.requestID
	session := m.session
	return m, func() tea.Msg {
		return commandDoneMsg{requestID: id, res: session.Process(trimmed)}
	}
}

func (m model) complete() (tea.Model, tea.Cmd) {
	comps := m.session.Completions(m.input)
	switch len(comps) {
	case 0:
	case 1:
		m.input = applyCompletion(m.input, comps[0])
	default:
		m.lines = append(m.lines, m.promptLine()+m.input)
		m.lines = append(m.lines, mutedStyle.Render(strings.Join(comps, "  ")))
	}
	return m, nil
}

func (m model) applyResult(res term.Result) (tea.Model, tea.Cmd) {
	if res.ClearScreen {
		m.lines = nil
	}
	if res.Err != nil {
		m.lines = append(m.lines, errorStyle.Render(res.Err.Error()))
		return m, nil
	}
	if res.Render != nil {
		m.lines = append(m.lines, strings.Split(formatResult(res.Render, m.width), "\n")...)
	} else if res.Output != "" {
		m.lines = append(m.lines, strings.Split(res.Output, "\n")...)
	}
	if res.OpenURL != "" {
		url := res.OpenURL
		return m, func() tea.Msg {
			return urlOpenedMsg{err: openBrowser(url)}
		}
	}
	return m, nil
}

func (m model) promptLine() string {
	return promptStyle.Render("visitor") +
		mutedStyle.Render(":") +
		pathStyle.Render(m.session.CurrentPath()) +
		promptStyle.Render("$ ")
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	lines := m.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	prompt := m.promptLine() + m.input
	if m.busy {
		prompt += mutedStyle.Render(" …")
	} else {
		prompt += "█"
	}
	return strings.Join(append(append([]string(nil), lines...), prompt), "\n")
}

// applyCompletion replaces the token being completed with the suggestion.
func applyCompletion(input, comp string) string {
	if strings.HasSuffix(input, " ") || strings.HasSuffix(input, "\t") {
		return input + comp
	}
	if idx := strings.LastIndexAny(input, " \t"); idx >= 0 {
		return input[:idx+1] + comp
	}
	return comp + " "
}
