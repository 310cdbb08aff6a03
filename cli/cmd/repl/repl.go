package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tuxedo/lang"
	"github.com/ardnew/tuxedo/log"
)

// editDoneMsg is sent when a template edited in the external editor has been
// rendered.
type editDoneMsg struct{ text, output string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editErrorMsg is sent when the edit process encounters an error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this cruft
  list     List variables and macros
  edit     Write a template in external $EDITOR and render it
  reset    Discard variables and macros defined in this session
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type an expression to evaluate it, or a template to render it
  Variables and macros defined by templates persist between inputs
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and input
// styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	engine       *lang.Engine
	vars         map[string]any
	scope        *lang.Context // persists between inputs
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	otherText    string // input of the inactive mode
	otherCursor  int
	lastEdit     string // template of the last edit command
}

// Run starts the REPL. Expressions are evaluated and templates rendered with
// eng in one context seeded with vars. History is kept in cacheDir.
func Run(
	ctx context.Context,
	eng *lang.Engine,
	vars map[string]any,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("vars", len(vars)),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, eng, vars, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	eng *lang.Engine,
	vars map[string]any,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		engine:     eng,
		vars:       vars,
		scope:      eng.NewContext(vars),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
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
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		m.lastEdit = msg.text

		return m, tea.Println(resultStyle.Render(msg.output))

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
	b.WriteString("\n")

	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		// Show history position indicator
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type an expression or template, or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case m.mode == modeEval && call.inCall && len(m.matches) == 0:
		if params, ok := signature(m.scope, call.name); ok {
			b.WriteString(renderSignatureHint(call.name, params, call.argIndex))
		}

	default:
		b.WriteString(m.renderCandidateBar())
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1, false), nil

	case tea.KeyDown:
		return m.historyMove(1, false), nil

	case tea.KeyShiftUp:
		return m.historyMove(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyMove(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space breaks out of tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected candidate by step, starting tab-cycling if needed.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)

	case step > 0:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = len(m.matches) - 1
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals that candidate.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not write history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval",
		slog.String("input", input),
	)

	echoCmd := tea.Println(formatCommand(input))

	out, err := m.evaluate(input)
	if err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(echoCmd, tea.Println(resultStyle.Render(out)))
}

// isTemplate reports whether input contains template tags rather than a bare
// expression.
func isTemplate(input string) bool {
	return strings.Contains(input, "{{") ||
		strings.Contains(input, "{%") ||
		strings.Contains(input, "{#")
}

// evaluate renders a template input or evaluates an expression input in the
// session context.
func (m model) evaluate(input string) (string, error) {
	ctx := m.ctxFunc()

	if isTemplate(input) {
		return m.engine.RenderContext(ctx, input, m.scope)
	}

	v, ok := m.engine.Evaluate(ctx, input, m.scope)
	if !ok {
		return "", ErrNoMatch
	}

	m.logger.TraceContext(ctx, "repl eval result",
		slog.String("kind", v.Kind().String()))

	return v.String(), nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)

	echoCmd := tea.Println(formatCtrlCommand(input))

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(m.listScope()))

	case "r", "reset":
		m.scope = m.engine.NewContext(m.vars)

		return m, tea.Sequence(echoCmd, tea.Println(hintStyle.Render("context reset")))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		cmd := &editCommand{
			engine:  m.engine,
			scope:   m.scope,
			ctxFunc: m.ctxFunc,
			logger:  m.logger,
			text:    m.lastEdit,
		}

		return m, tea.Sequence(echoCmd, tea.Exec(cmd, func(err error) tea.Msg {
			switch {
			case err != nil:
				return editErrorMsg{err: err}
			case cmd.text == "":
				return editCancelledMsg{}
			}

			return editDoneMsg{text: cmd.text, output: cmd.output}
		}))

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
		)
	}
}

// listScope describes the variables and macros of the session context.
func (m model) listScope() string {
	var b strings.Builder

	vars := m.scope.Snapshot()
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "%s = %s\n", name, hintStyle.Render(vars[name].String()))
	}

	for _, name := range m.scope.Macros() {
		mac, _ := m.scope.Macro(name)
		fmt.Fprintf(&b, "%s(%s)\n", name, strings.Join(mac.Params, ", "))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyMove steps through the history by step entries. With sameMode,
// entries of the other mode are skipped; otherwise the mode follows the
// entry.
func (m model) historyMove(step int, sameMode bool) model {
	i := m.historyIdx + step

	for 0 <= i && i < m.history.Len() {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			i += step

			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if step > 0 {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode changes the input mode, keeping the text of each mode.
func (m model) switchToMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	text, cursor := m.input.Value(), m.input.Position()

	m.mode = mode
	m.tabActive = false

	if mode == modeCtrl {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	} else {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	}

	m.input.SetValue(m.otherText)
	m.input.SetCursor(m.otherCursor)
	m.otherText, m.otherCursor = text, cursor

	refreshMatches(&m, false)

	return m
}
