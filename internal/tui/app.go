package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"calentry/internal/model"
	"calentry/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type eventsLoadedMsg struct {
	events []model.Event
	err    error
}

type eventSavedMsg struct {
	event model.Event
	err   error
}

type eventDeletedMsg struct {
	id  string
	err error
}

type eventItem struct {
	ev      model.Event
	display string
}

func (i eventItem) Title() string       { return i.ev.Summary }
func (i eventItem) Description() string { return i.display }
func (i eventItem) FilterValue() string { return strings.TrimSpace(i.ev.Summary) }

type appKeyMap struct {
	New    key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new event")),
		Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type confirmDelete struct {
	id      string
	summary string
	focus   confirmModalFocus
}

type appModel struct {
	ctx     context.Context
	store   store.Store
	pattern string
	now     func() time.Time

	width  int
	height int

	list    list.Model
	keys    appKeyMap
	editor  *eventEditor
	confirm *confirmDelete
	status  string
}

func newAppModel(ctx context.Context, s store.Store, pattern string) appModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Events"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("event", "events")
	// Quitting is handled here so it never fires while typing a filter.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return appModel{
		ctx:     ctx,
		store:   s,
		pattern: pattern,
		now:     time.Now,
		list:    l,
		keys:    defaultAppKeyMap(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.loadEvents()
}

func (m appModel) loadEvents() tea.Cmd {
	return func() tea.Msg {
		evs, err := m.store.ListEvents(m.ctx)
		return eventsLoadedMsg{events: evs, err: err}
	}
}

func (m appModel) saveEvent(ev model.Event) tea.Cmd {
	return func() tea.Msg {
		saved, err := m.store.AddEvent(m.ctx, ev)
		return eventSavedMsg{event: saved, err: err}
	}
}

func (m appModel) deleteEvent(id string) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.store.DeleteEvent(m.ctx, id)
		if err == nil && !ok {
			err = fmt.Errorf("event not found: %s", id)
		}
		return eventDeletedMsg{id: id, err: err}
	}
}

func (m *appModel) resize() {
	left, _ := splitWidths(m.width)
	m.list.SetSize(left, max(m.height-2, 1))
}

func (m appModel) selected() (model.Event, bool) {
	it, ok := m.list.SelectedItem().(eventItem)
	if !ok {
		return model.Event{}, false
	}
	return it.ev, true
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case eventsLoadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.events))
		for _, ev := range msg.events {
			items = append(items, eventItem{ev: ev, display: ev.Start.Display(m.pattern)})
		}
		return m, m.list.SetItems(items)

	case eventSavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		slog.Info("event saved", "id", msg.event.ID)
		m.status = "saved " + msg.event.Summary
		return m, m.loadEvents()

	case eventDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "deleted " + msg.id
		return m, m.loadEvents()

	case editorSubmitMsg:
		m.editor = nil
		return m, m.saveEvent(msg.Event)

	case editorCancelMsg:
		m.editor = nil
		m.status = ""
		return m, nil
	}

	if m.editor != nil {
		return m, m.editor.Update(msg)
	}
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(km, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(km, m.keys.New):
			ed, err := newEventEditor(m.pattern, m.now())
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.editor = ed
			m.status = ""
			return m, nil
		case key.Matches(km, m.keys.Delete):
			if ev, ok := m.selected(); ok {
				m.confirm = &confirmDelete{id: ev.ID, summary: ev.Summary, focus: confirmFocusCancel}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirm.focus = m.confirm.focus.toggle()
	case "y":
		id := m.confirm.id
		m.confirm = nil
		return m, m.deleteEvent(id)
	case "enter":
		id, focus := m.confirm.id, m.confirm.focus
		m.confirm = nil
		if focus == confirmFocusConfirm {
			return m, m.deleteEvent(id)
		}
	case "esc", "ctrl+g", "n":
		m.confirm = nil
	}
	return m, nil
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.editor != nil {
		return placeModal(m.width, m.height, m.editor.View(m.width))
	}
	if m.confirm != nil {
		body := fmt.Sprintf("Delete %q?", m.confirm.summary)
		return placeModal(m.width, m.height, renderConfirmModal(m.width, "Delete event", body, "Delete", "Cancel", m.confirm.focus))
	}

	bodyH := max(m.height-2, 1)
	header := lipgloss.NewStyle().Bold(true).Render("calentry") + styleMuted().Render("  "+m.pattern)

	left, right := splitWidths(m.width)
	var body string
	if len(m.list.Items()) == 0 {
		body = normalizePane(styleMuted().Render("No events yet. Press n to draft one."), m.width, bodyH)
	} else if right == 0 {
		body = normalizePane(m.list.View(), m.width, bodyH)
	} else {
		sep := normalizePane(strings.TrimRight(strings.Repeat("│\n", bodyH), "\n"), 1, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(m.list.View(), left, bodyH),
			styleMuted().Render(sep),
			normalizePane(m.renderPreview(right), right, bodyH),
		)
	}

	footer := styleMuted().Render("n: new   x: delete   /: filter   q: quit")
	if m.status != "" {
		footer = m.status
	}
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) renderPreview(width int) string {
	ev, ok := m.selected()
	if !ok {
		return ""
	}
	lines := []string{
		" " + lipgloss.NewStyle().Bold(true).Render(ev.Summary),
		" " + styleMuted().Render(ev.Start.Display(m.pattern)),
		"",
	}
	if notes := renderMarkdown(ev.Notes, width-2); notes != "" {
		lines = append(lines, notes)
	}
	return strings.Join(lines, "\n")
}
