package tui

import (
	"strings"
	"time"

	"calentry/internal/model"
	"calentry/internal/segfield"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editorFocus int

const (
	focusSummary editorFocus = iota
	focusDate
	focusAllDay
	focusTime
	focusNotes
	numEditorFocus
)

const (
	entryDate = "date"
	entryTime = "time"
)

type editorKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func defaultEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter", "x"), key.WithHelp("space", "toggle")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
	}
}

type editorSubmitMsg struct{ Event model.Event }

type editorCancelMsg struct{}

// eventEditor is the "new event" modal: summary, date, all-day toggle,
// time and notes.
type eventEditor struct {
	summary textinput.Model
	date    *SegmentEntry
	time    *SegmentEntry
	allDay  bool
	notes   textarea.Model

	focus editorFocus
	keys  editorKeyMap
	help  help.Model

	// starts describes the current start; refreshed on FieldChangedMsg.
	starts string
	err    string
}

// newEventEditor opens on now's date and the next full hour.
func newEventEditor(pattern string, now time.Time) (*eventEditor, error) {
	df, err := segfield.NewDate(pattern)
	if err != nil {
		return nil, err
	}
	df.SetFromTime(now)
	tf := segfield.NewTime()
	tf.SetFromTime(now.Truncate(time.Hour).Add(time.Hour))

	e := &eventEditor{
		date: NewSegmentEntry(entryDate, df),
		time: NewSegmentEntry(entryTime, tf),
		keys: defaultEditorKeyMap(),
		help: help.New(),
	}

	e.summary = textinput.New()
	e.summary.Placeholder = "Summary"
	e.summary.CharLimit = 200
	e.summary.Prompt = ""

	e.notes = textarea.New()
	e.notes.Placeholder = "Notes (markdown)…"
	e.notes.CharLimit = 0
	e.notes.ShowLineNumbers = false
	e.notes.SetHeight(4)

	e.setFocus(focusSummary)
	e.refreshStarts()
	return e, nil
}

func (e *eventEditor) setWidth(bodyW int) {
	e.summary.Width = max(bodyW-14, 10)
	e.notes.SetWidth(max(bodyW-10, 10))
	e.help.Width = bodyW
}

func (e *eventEditor) setFocus(f editorFocus) tea.Cmd {
	e.focus = f
	e.summary.Blur()
	e.notes.Blur()
	e.date.Blur()
	e.time.Blur()
	switch f {
	case focusSummary:
		return e.summary.Focus()
	case focusNotes:
		return e.notes.Focus()
	case focusDate:
		e.date.Focus()
	case focusTime:
		e.time.Focus()
	}
	return nil
}

func (e *eventEditor) cycleFocus(delta int) tea.Cmd {
	f := e.focus
	for {
		f = editorFocus((int(f) + delta + int(numEditorFocus)) % int(numEditorFocus))
		if f == focusTime && e.allDay {
			continue
		}
		return e.setFocus(f)
	}
}

// event is the draft as currently entered.
func (e *eventEditor) event() model.Event {
	d, m, y := e.date.Field().Date()
	start := model.NewDate(d, m, y)
	if !e.allDay {
		h, mi := e.time.Field().Time()
		start = model.NewDateTime(d, m, y, h, mi)
	}
	return model.Event{
		Summary: strings.TrimSpace(e.summary.Value()),
		Notes:   strings.TrimSpace(e.notes.Value()),
		Start:   start,
	}
}

func (e *eventEditor) refreshStarts() {
	d, m, y := e.date.Field().Date()
	if e.allDay {
		e.starts = time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Format("Mon, 2 Jan 2006") + " (all day)"
		return
	}
	h, mi := e.time.Field().Time()
	e.starts = time.Date(y, time.Month(m), d, h, mi, 0, 0, time.UTC).Format("Mon, 2 Jan 2006 15:04")
}

func (e *eventEditor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FieldChangedMsg:
		e.refreshStarts()
		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, e.keys.Cancel):
			return func() tea.Msg { return editorCancelMsg{} }
		case key.Matches(msg, e.keys.Save):
			ev := e.event()
			if ev.Summary == "" {
				e.err = "summary is required"
				return e.setFocus(focusSummary)
			}
			e.err = ""
			return func() tea.Msg { return editorSubmitMsg{Event: ev} }
		case key.Matches(msg, e.keys.Next):
			return e.cycleFocus(1)
		case key.Matches(msg, e.keys.Prev):
			return e.cycleFocus(-1)
		}
		if e.focus == focusAllDay {
			if key.Matches(msg, e.keys.Toggle) {
				e.allDay = !e.allDay
				e.refreshStarts()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch e.focus {
	case focusSummary:
		e.summary, cmd = e.summary.Update(msg)
	case focusNotes:
		e.notes, cmd = e.notes.Update(msg)
	case focusDate:
		cmd = e.date.Update(msg)
	case focusTime:
		cmd = e.time.Update(msg)
	}
	return cmd
}

func (e *eventEditor) View(width int) string {
	bodyW := modalBodyWidth(width)
	e.setWidth(bodyW)

	check := "[ ]"
	if e.allDay {
		check = "[x]"
	}
	timeView := e.time.View()
	if e.allDay {
		timeView = styleMuted().Render("--:--")
	}

	lines := []string{
		renderLabeled("Summary", e.focus == focusSummary, renderInputLine(bodyW-10, e.summary.View())),
		"",
		renderLabeled("Date", e.focus == focusDate, e.date.View()+styleMuted().Render("  "+e.date.Field().Layout().Pattern())),
		renderLabeled("All day", e.focus == focusAllDay, check),
		renderLabeled("Time", e.focus == focusTime, timeView),
		"",
		renderLabeled("Notes", e.focus == focusNotes, ""),
		e.notes.View(),
		"",
		styleMuted().Render("Starts " + e.starts),
	}
	if e.err != "" {
		lines = append(lines, styleError().Render(e.err))
	}

	bindings := []key.Binding{e.keys.Next, e.keys.Save, e.keys.Cancel}
	switch e.focus {
	case focusDate:
		bindings = append(bindings, e.date.KeyMap.ShortHelp()...)
	case focusTime:
		bindings = append(bindings, e.time.KeyMap.ShortHelp()...)
	case focusAllDay:
		bindings = append(bindings, e.keys.Toggle)
	}
	lines = append(lines, "", e.help.ShortHelpView(bindings))

	return renderModalBox(width, "New event", strings.Join(lines, "\n"))
}
