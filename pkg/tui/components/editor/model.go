package editor

import (
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/theme"
)

// Model is the note editor. It owns the title and content buffers and emits
// save/back requests; whether a back actually leaves the screen, or raises
// the unsaved-changes dialog instead, is decided upstream and reflected back
// in via SetConfirming.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	width  int
	height int

	title   textinput.Model
	content textarea.Model

	subject    note.Note
	confirming bool
	saving     bool
	errText    string
}

func NewModel(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("editor")
	}

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 256
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Type something..."
	content.CharLimit = 0
	content.ShowLineNumbers = false

	return &Model{
		id:      id,
		theme:   theme.Default(),
		title:   title,
		content: content,
	}
}

func (m *Model) ID() events.ComponentID { return m.id }

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := width - 4
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	h := height - 8
	if h < 4 {
		h = 4
	}
	m.content.SetWidth(w)
	m.content.SetHeight(h)
}

// SetNote loads a subject into the working buffers. The title loads
// verbatim, coerced placeholder included, so an untouched buffer always
// compares equal to the stored note.
func (m *Model) SetNote(n note.Note) {
	m.subject = n
	m.title.SetValue(n.Title)
	m.content.SetValue(n.Content)
	m.confirming = false
	m.saving = false
	m.errText = ""
	m.title.Focus()
	m.content.Blur()
}

// SetConfirming toggles the unsaved-changes dialog.
func (m *Model) SetConfirming(v bool) { m.confirming = v }

// SetSaving disables input while a save is in flight.
func (m *Model) SetSaving(v bool) { m.saving = v }

// SetError surfaces a failed save without leaving the editor.
func (m *Model) SetError(text string) { m.errText = text }

// Title returns the current title buffer.
func (m *Model) Title() string { return m.title.Value() }

// Content returns the current content buffer.
func (m *Model) Content() string { return m.content.Value() }

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	id := m.id
	if m.confirming {
		switch key.String() {
		case "s", "enter":
			title, content := m.title.Value(), m.content.Value()
			return m, func() tea.Msg {
				return events.SaveRequestMsg{Component: id, Title: title, Content: content}
			}
		case "d":
			return m, func() tea.Msg {
				return events.DiscardRequestMsg{Component: id}
			}
		}
		return m, nil
	}

	if m.saving {
		return m, nil
	}

	switch key.String() {
	case "esc":
		title, content := m.title.Value(), m.content.Value()
		return m, func() tea.Msg {
			return events.BackRequestMsg{Component: id, Title: title, Content: content}
		}
	case "ctrl+s":
		title, content := m.title.Value(), m.content.Value()
		return m, func() tea.Msg {
			return events.SaveRequestMsg{Component: id, Title: title, Content: content}
		}
	case "tab":
		if m.title.Focused() {
			m.title.Blur()
			cmd := m.content.Focus()
			return m, cmd
		}
		m.content.Blur()
		m.title.Focus()
		return m, textinput.Blink
	case "enter":
		if m.title.Focused() {
			m.title.Blur()
			cmd := m.content.Focus()
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.title.Focused() {
		m.title, cmd = m.title.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.content.Focused() {
		m.content, cmd = m.content.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	t := m.theme

	swatch := ""
	if m.subject.Color != "" {
		swatch = theme.Swatch(m.subject.Color).Render("  ") + " "
	}

	header := swatch + t.Header.Title.Render("Editor")
	if m.subject.Draft() {
		header = swatch + t.Header.Title.Render("New Note")
	}

	lines := []string{
		header,
		"",
		t.Form.Label.Render("Title"),
		m.title.View(),
		"",
		m.content.View(),
		"",
	}

	if m.errText != "" {
		lines = append(lines, t.Form.Error.Render(m.errText), "")
	}
	if m.saving {
		lines = append(lines, t.Form.Hint.Render("Saving..."), "")
	}

	lines = append(lines, t.Footer.Help.Render("ctrl+s save · tab switch field · esc back"))

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.confirming {
		return lipgloss.JoinVertical(lipgloss.Left, body, "", m.dialog())
	}
	return body
}

func (m *Model) dialog() string {
	t := m.theme
	return t.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		t.Modal.Title.Render("Save changes ?"),
		"",
		t.Modal.Body.Render("[s] save   [d] discard"),
	))
}
