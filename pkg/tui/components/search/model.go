package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/theme"
)

// Model is the search screen: a query input over the cached collection.
// Matching is live against title and content; a blank query shows the
// prompt state rather than the full list.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	width  int
	height int

	input    textinput.Model
	notes    []note.Note
	matches  []note.Note
	selected int
}

func NewModel(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("search")
	}

	input := textinput.New()
	input.Placeholder = "Search by the keyword..."
	input.Prompt = "/ "
	input.Focus()

	return &Model{
		id:    id,
		theme: theme.Default(),
		input: input,
	}
}

func (m *Model) ID() events.ComponentID { return m.id }

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetNotes replaces the searchable collection and re-runs the query.
func (m *Model) SetNotes(notes []note.Note) {
	m.notes = notes
	m.filter()
}

// Reset clears the query, typically on entering the screen.
func (m *Model) Reset() {
	m.input.SetValue("")
	m.matches = nil
	m.selected = 0
	m.input.Focus()
}

// Query returns the current query text.
func (m *Model) Query() string { return m.input.Value() }

func (m *Model) filter() {
	query := m.input.Value()
	m.matches = m.matches[:0]
	if strings.TrimSpace(query) == "" {
		m.selected = 0
		return
	}
	for _, n := range m.notes {
		if n.Matches(query) {
			m.matches = append(m.matches, n)
		}
	}
	if m.selected >= len(m.matches) {
		m.selected = 0
	}
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		id := m.id
		switch key.String() {
		case "esc":
			return m, func() tea.Msg {
				return events.BackRequestMsg{Component: id}
			}
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.matches)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			if m.selected >= 0 && m.selected < len(m.matches) {
				n := m.matches[m.selected]
				return m, func() tea.Msg {
					return events.OpenNoteMsg{Component: id, Note: n}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()
	return m, cmd
}

func (m *Model) View() string {
	t := m.theme

	lines := []string{
		t.Header.Title.Render("Search"),
		"",
		m.input.View(),
		"",
	}

	switch {
	case strings.TrimSpace(m.input.Value()) == "":
		lines = append(lines, t.Text.Faint.Render("Search by the keyword..."))
	case len(m.matches) == 0:
		lines = append(lines, t.Text.Faint.Render("File Not Found. Try searching again."))
	default:
		for i, n := range m.matches {
			lines = append(lines, m.row(n, i == m.selected))
		}
	}

	lines = append(lines, "", t.Footer.Help.Render("enter open · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) row(n note.Note, selected bool) string {
	width := m.width - 6
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}
	title := truncate.StringWithTail(n.Title, uint(width), "…")
	card := theme.Swatch(n.Color).Render("  " + title + "  ")
	if selected {
		return m.theme.Card.Selected.Render("▸") + card
	}
	return " " + card
}
