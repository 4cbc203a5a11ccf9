package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

// editedMsg is sent when an $EDITOR session produced a new store.
type editedMsg struct{ store *props.Store }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editErrorMsg is sent when editing failed.
type editErrorMsg struct{ err error }

const prompt = "➜ "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	history      *History
	historyIdx   int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int    // selected candidate, -1 when not tab-cycling
	preTabText   string // input before tab-cycling began
	preTabCursor int
	width        int
	quitting     bool
}

// Run starts an interactive session editing store. Commands are recorded
// in the history file at historyPath, which may be empty to disable
// persistence. Changes are made in memory only; store is never written back.
func Run(
	ctx context.Context,
	store *props.Store,
	historyPath string,
	logger log.Logger,
	opts ...tea.ProgramOption,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if store == nil || store.Released() {
		return props.ErrReleased
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("history", historyPath),
		slog.Int("history_count", history.Len()),
		slog.Int("entry_count", store.Len()))

	m := newModel(ctx, &session{ctx: ctx, store: store, logger: logger}, history)

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, s *session, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    s,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil

	case editedMsg:
		m.session.store.Release()
		m.session.store = msg.store

		return m, tea.Println(resultStyle.Render(
			fmt.Sprintf("updated %d entries", msg.store.Len()),
		))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteByte('\n')

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(
			"Type a command: " + strings.Join(commandNames(), ", ")))

	default:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.width))
	}

	b.WriteByte('\n')

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.suggIdx >= 0 {
			// Lock in the selected candidate without executing.
			m.suggIdx = -1
			m.refreshMatches()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.suggIdx >= 0 {
			m.suggIdx = -1
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.suggIdx = -1
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the candidate selection by step and substitutes it into the
// input. A single candidate is completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.suggIdx < 0 {
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if step > 0 {
			m.suggIdx = 0
		} else {
			m.suggIdx = n - 1
		}
	} else {
		m.suggIdx = (m.suggIdx + step + n) % n
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) replaceWord(replacement string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(replacement))
	m.wordEnd = m.wordStart + len(replacement)
}

func (m *model) refreshMatches() {
	candidates, word, start, end := completions(
		m.session.store, m.input.Value(), m.input.Position(),
	)

	m.wordStart, m.wordEnd = start, end
	m.matches = match(candidates, word, start)
}

func (m model) historyMove(step int) model {
	idx := m.historyIdx + step
	if idx < 0 {
		return m
	}

	m.suggIdx = -1

	if idx >= m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches()

		return m
	}

	if line, err := m.history.Get(idx); err == nil {
		m.historyIdx = idx
		m.input.SetValue(line)
		m.input.SetCursor(len(line))
		m.refreshMatches()
	}

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input); err != nil {
		m.session.logger.WarnContext(m.ctxFunc(), "could not write history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	out, act, err := m.session.exec(input)
	if err != nil {
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	switch act {
	case actionQuit:
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case actionClear:
		return m, tea.ClearScreen

	case actionEdit:
		return m, tea.Sequence(echo, m.edit())
	}

	if out == "" {
		return m, echo
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		store:   m.session.store,
		ctxFunc: m.ctxFunc,
		logger:  m.session.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.edited == nil:
			return editCancelledMsg{}
		default:
			return editedMsg{store: cmd.edited}
		}
	})
}
