// Package ui provides the interactive terminal front end.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todos-go/internal/config"
	"github.com/nibzard/todos-go/internal/logging"
	"github.com/nibzard/todos-go/internal/todo"
)

// ErrNoTTY is returned when the TUI is started without a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// listTop is the screen line of the first task row: title, blank line,
// new todo input, blank line and the toggle-all line come first.
const listTop = 5

// RunTUI starts the TUI over store and blocks until the user quits or ctx
// is done.
func RunTUI(ctx context.Context, cfg *config.Config, store *todo.Store, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return ErrNoTTY
	}
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	model := newTUIModel(store, logger)
	program := tea.NewProgram(model, opts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

type tuiModel struct {
	store    *todo.Store
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	editor   textinput.Model
	focus    focusArea
	cursor   int
	showHelp bool
	snap     todo.Snapshot
}

func newTUIModel(store *todo.Store, logger *log.Logger) *tuiModel {
	if logger == nil {
		logger = logging.Discard()
	}

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "❯ "
	input.CharLimit = 0
	input.Width = 60
	input.Focus()

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 0
	editor.Width = 60

	m := &tuiModel{
		store:  store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  input,
		editor: editor,
		focus:  focusInput,
	}
	m.sync()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		width := msg.Width - 8
		if width < 10 {
			width = 10
		}
		m.input.Width = width
		m.editor.Width = width
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		switch {
		case m.snap.Edit != nil:
			cmd = m.updateEditing(msg)
		case m.focus == focusInput:
			cmd = m.updateInput(msg)
		default:
			cmd = m.updateList(msg)
		}
	}
	m.sync()
	return m, cmd
}

// updateEditing handles keys while a task title is being edited.
func (m *tuiModel) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		m.store.ConfirmKey()
		m.editor.Blur()
		return nil
	case key.Matches(msg, m.keys.Escape):
		m.store.CancelEdit()
		m.editor.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.store.UpdateDraft(m.editor.Value())
	return cmd
}

// updateInput handles keys while the new todo input has focus.
func (m *tuiModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		if id, ok := m.store.Add(m.input.Value()); ok {
			m.input.Reset()
			m.logger.Debug("todo added", "id", id)
		}
		return nil
	case key.Matches(msg, m.keys.Escape), msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		m.focus = focusList
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// updateList handles keys while the task list has focus.
func (m *tuiModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.focusInput()
			return textinput.Blink
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.New):
		m.focusInput()
		return textinput.Blink
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.ToggleStatus(t.ID)
		}
	case key.Matches(msg, m.keys.ToggleAll):
		m.store.ToggleAll()
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.store.Delete(t.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		if n := m.store.ClearCompleted(); n > 0 {
			m.logger.Debug("cleared completed", "removed", n)
		}
	case key.Matches(msg, m.keys.TabAll):
		m.store.SetTab(todo.TabAll)
	case key.Matches(msg, m.keys.TabActive):
		m.store.SetTab(todo.TabActive)
	case key.Matches(msg, m.keys.TabCompleted):
		m.store.SetTab(todo.TabCompleted)
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok && m.store.StartEdit(t.ID) {
			return m.openEditor()
		}
	}
	return nil
}

// handleMouse treats a left press anywhere but the row under edit as an
// outside interaction, which commits the edit. A press on a task row also
// moves the cursor there.
func (m *tuiModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	row := msg.Y - listTop
	if m.snap.Edit != nil {
		if m.rowOf(m.snap.Edit.TargetID) == row {
			return
		}
		m.store.OutsideInteraction()
		m.editor.Blur()
	}
	if row >= 0 && row < len(m.snap.Visible) {
		m.cursor = row
		m.focus = focusList
		m.input.Blur()
	}
}

func (m *tuiModel) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}

func (m *tuiModel) openEditor() tea.Cmd {
	edit, ok := m.store.Edit()
	if !ok {
		return nil
	}
	m.editor.SetValue(edit.Draft)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

// sync re-reads the store and keeps the cursor on a visible row.
func (m *tuiModel) sync() {
	m.snap = m.store.Snapshot()
	if m.cursor >= len(m.snap.Visible) {
		m.cursor = len(m.snap.Visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.help.ShowAll = m.showHelp
}

func (m *tuiModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Visible) {
		return todo.Task{}, false
	}
	return m.snap.Visible[m.cursor], true
}

// rowOf returns the visible row of the task with id, or -1.
func (m *tuiModel) rowOf(id string) int {
	for i, t := range m.snap.Visible {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)
	b.WriteString(m.input.View() + "\n\n")
	writeToggleAll(&b, m.snap)
	m.writeRows(&b)
	b.WriteString("\n")
	writeFooter(&b, m.snap)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("todos") + "\n\n")
}

func writeToggleAll(b *strings.Builder, snap todo.Snapshot) {
	b.WriteString("  " + checkbox(snap.AllCompleted()) + " Mark all as complete\n")
}

func (m *tuiModel) writeRows(b *strings.Builder) {
	if len(m.snap.Visible) == 0 {
		b.WriteString("  " + emptyStyle.Render("Nothing here.") + "\n")
		return
	}
	for i, t := range m.snap.Visible {
		pointer := "  "
		if i == m.cursor && m.focus == focusList {
			pointer = cursorStyle.Render("> ")
		}
		line := pointer + checkbox(t.Completed()) + " "
		if m.snap.Edit != nil && m.snap.Edit.TargetID == t.ID {
			line += m.editor.View()
		} else if t.Completed() {
			line += completedStyle.Render(t.Title)
		} else {
			line += t.Title
		}
		b.WriteString(line + "\n")
	}
}

func writeFooter(b *strings.Builder, snap todo.Snapshot) {
	left := todo.ItemsLeft(snap.ActiveCount)
	if n, rest, ok := strings.Cut(left, " "); ok {
		left = countStyle.Render(n) + " " + rest
	}
	tabs := make([]string, 0, len(todo.Tabs))
	for _, tab := range todo.Tabs {
		style := tabStyle
		if tab == snap.Tab {
			style = selectedTabStyle
		}
		tabs = append(tabs, style.Render(tab.Label()))
	}
	b.WriteString("  " + left + "   " + strings.Join(tabs, " "))
	// Only offered when there is something to clear.
	if snap.CompletedCount > 0 {
		b.WriteString("   " + clearStyle.Render("Clear completed"))
	}
	b.WriteString("\n")
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
