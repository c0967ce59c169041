package home

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/theme"
)

// Model renders the note list as colored cards and lets the user pick one,
// add a new note, or jump to search. The list itself is owned by the cache;
// the root model pushes fresh snapshots in via SetNotes.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	width  int
	height int

	notes    []note.Note
	selected int
	email    string
}

func NewModel(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("home")
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

// SetNotes replaces the rendered list, keeping the selection on the same
// note when it survives the reload.
func (m *Model) SetNotes(notes []note.Note) {
	var keep string
	if m.selected >= 0 && m.selected < len(m.notes) {
		keep = m.notes[m.selected].ID
	}
	m.notes = notes
	m.selected = 0
	for i, n := range notes {
		if n.ID == keep {
			m.selected = i
			break
		}
	}
}

// SetIdentity sets the email shown in the header.
func (m *Model) SetIdentity(email string) { m.email = email }

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	id := m.id
	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.notes)-1 {
			m.selected++
		}
	case "enter":
		if m.selected >= 0 && m.selected < len(m.notes) {
			n := m.notes[m.selected]
			return m, func() tea.Msg {
				return events.OpenNoteMsg{Component: id, Note: n}
			}
		}
	case "a", "+":
		return m, func() tea.Msg {
			return events.AddNoteMsg{Component: id}
		}
	case "/", "s":
		return m, func() tea.Msg {
			return events.OpenSearchMsg{Component: id}
		}
	case "ctrl+l":
		return m, func() tea.Msg {
			return events.LogoutMsg{Component: id}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	t := m.theme

	header := t.Header.Title.Render("Notes")
	if m.email != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top,
			header, "  ", t.Header.Subtitle.Render(m.email))
	}

	var body string
	if len(m.notes) == 0 {
		body = t.Text.Faint.Render("Create your first note !")
	} else {
		cards := make([]string, 0, len(m.notes))
		for i, n := range m.notes {
			cards = append(cards, m.card(n, i == m.selected))
		}
		body = strings.Join(cards, "\n")
	}

	help := t.Footer.Help.Render(
		"enter open · a add · / search · i info · ctrl+l logout · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", help)
}

func (m *Model) card(n note.Note, selected bool) string {
	width := m.width - 4
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}

	title := truncate.StringWithTail(n.Title, uint(width-4), "…")
	stamp := n.Created.Format("Jan _2 2006")
	pad := width - lipgloss.Width(title) - lipgloss.Width(stamp) - 4
	if pad < 1 {
		pad = 1
	}
	line := fmt.Sprintf("  %s%s%s  ", title, strings.Repeat(" ", pad), stamp)

	card := theme.Swatch(n.Color).Render(line)
	if selected {
		return m.theme.Card.Selected.Render("▸") + card
	}
	return " " + card
}
