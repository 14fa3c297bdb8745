package tui

import (
	"log/slog"
	"strings"

	"calentry/internal/segfield"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FieldChangedMsg is sent after a SegmentEntry's value changes.
type FieldChangedMsg struct {
	ID   string
	Text string
}

// SegmentKeyMap defines the keys a SegmentEntry reacts to. Printable runes
// and pastes are always inserted.
type SegmentKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Increment key.Binding
	Decrement key.Binding
	Backspace key.Binding
	Delete    key.Binding
}

func DefaultSegmentKeyMap() SegmentKeyMap {
	return SegmentKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "ctrl+b"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "ctrl+f"), key.WithHelp("→", "right")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "start")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "end")),
		Increment: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "increment")),
		Decrement: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "decrement")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d")),
	}
}

// SegmentEntry is a single-line input over a segfield.Field. The field keeps
// the text canonical; the entry only tracks the caret and focus.
type SegmentEntry struct {
	ID     string
	KeyMap SegmentKeyMap

	field   *segfield.Field
	caret   int
	focused bool
	// changes counts observer callbacks so Update can report them.
	changes int
}

func NewSegmentEntry(id string, f *segfield.Field) *SegmentEntry {
	e := &SegmentEntry{ID: id, KeyMap: DefaultSegmentKeyMap(), field: f}
	e.caret = f.HomeCaret()
	f.OnChange(func() { e.changes++ })
	return e
}

func (e *SegmentEntry) Field() *segfield.Field { return e.field }
func (e *SegmentEntry) Caret() int { return e.caret }
func (e *SegmentEntry) Value() string { return e.field.Text() }
func (e *SegmentEntry) Focused() bool { return e.focused }

func (e *SegmentEntry) Focus() { e.focused = true }
func (e *SegmentEntry) Blur() { e.focused = false }

// SetCaret moves the caret, never leaving it on a separator.
func (e *SegmentEntry) SetCaret(pos int) {
	if pos <= e.field.HomeCaret() {
		e.caret = e.field.HomeCaret()
		return
	}
	if pos >= e.field.Len() {
		e.caret = e.field.Len()
		return
	}
	e.caret = e.field.NextCaret(pos - 1)
}

// Update handles a key when focused. The returned command, if any, carries
// a FieldChangedMsg.
func (e *SegmentEntry) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !e.focused {
		return nil
	}

	before := e.changes
	switch {
	case km.Type == tea.KeyRunes:
		res := e.field.Insert(e.caret, string(km.Runes))
		e.caret = res.Caret
	case key.Matches(km, e.KeyMap.Left):
		e.caret = e.field.PrevCaret(e.caret)
	case key.Matches(km, e.KeyMap.Right):
		e.caret = e.field.NextCaret(e.caret)
	case key.Matches(km, e.KeyMap.Home):
		e.caret = e.field.HomeCaret()
	case key.Matches(km, e.KeyMap.End):
		e.caret = e.field.Len()
	case key.Matches(km, e.KeyMap.Increment):
		e.caret = e.field.Step(e.caret, segfield.Up).Caret
	case key.Matches(km, e.KeyMap.Decrement):
		e.caret = e.field.Step(e.caret, segfield.Down).Caret
	case key.Matches(km, e.KeyMap.Backspace):
		prev := e.field.PrevCaret(e.caret)
		e.caret = e.field.Delete(prev, e.caret).Caret
	case key.Matches(km, e.KeyMap.Delete):
		e.caret = e.field.Delete(e.caret, e.caret+1).Caret
	default:
		return nil
	}

	if e.changes == before {
		return nil
	}
	changed := FieldChangedMsg{ID: e.ID, Text: e.field.Text()}
	slog.Debug("field changed", "id", changed.ID, "text", changed.Text)
	return func() tea.Msg { return changed }
}

// View renders the text with the caret cell highlighted when focused.
func (e *SegmentEntry) View() string {
	text := []rune(e.field.Text())
	if !e.focused {
		return lipgloss.NewStyle().Foreground(colorSurfaceFg).Render(string(text))
	}

	cursor := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent)
	var b strings.Builder
	b.WriteString(string(text[:min(e.caret, len(text))]))
	if e.caret < len(text) {
		b.WriteString(cursor.Render(string(text[e.caret])))
		b.WriteString(string(text[e.caret+1:]))
	} else {
		b.WriteString(cursor.Render(" "))
	}
	return b.String()
}

// ShortHelp implements help.KeyMap.
func (k SegmentKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Increment, k.Decrement}
}

// FullHelp implements help.KeyMap.
func (k SegmentKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Home, k.End}}
}
