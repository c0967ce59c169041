package viewer

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/theme"
)

// Model is the read-only note view. Content renders verbatim, wrapped to
// the terminal width.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	width  int
	height int

	subject note.Note
}

func NewModel(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("viewer")
	}
	return &Model{
		id:    id,
		theme: theme.Default(),
	}
}

func (m *Model) ID() events.ComponentID { return m.id }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetNote sets the note being viewed.
func (m *Model) SetNote(n note.Note) { m.subject = n }

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	id := m.id
	switch key.String() {
	case "e":
		return m, func() tea.Msg {
			return events.EditRequestMsg{Component: id}
		}
	case "d", "delete":
		return m, func() tea.Msg {
			return events.DeleteRequestMsg{Component: id}
		}
	case "esc", "backspace":
		return m, func() tea.Msg {
			return events.BackRequestMsg{Component: id}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	t := m.theme

	width := m.width - 4
	if width > 76 {
		width = 76
	}
	if width < 20 {
		width = 20
	}

	swatch := theme.Swatch(m.subject.Color).Render("  ")
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		swatch, " ", t.Header.Title.Render(m.subject.Title))

	stamp := t.Text.Faint.Render(m.subject.Created.Format("Jan _2 2006 15:04"))
	if !m.subject.Updated.IsZero() && !m.subject.Updated.Equal(m.subject.Created.Time) {
		stamp = t.Text.Faint.Render(
			"edited " + m.subject.Updated.Format("Jan _2 2006 15:04"))
	}

	body := t.Text.Body.Render(wordwrap.String(m.subject.Content, width))

	help := t.Footer.Help.Render("e edit · d delete · esc back")

	return lipgloss.JoinVertical(lipgloss.Left, header, stamp, "", body, "", help)
}
