package viewer

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewShowsContentVerbatim(t *testing.T) {
	m := NewModel("viewer")
	m.SetSize(80, 24)
	m.SetNote(note.Note{
		ID:      "a",
		Title:   "groceries",
		Content: "milk\n\n  eggs (indented)",
		Color:   "#91F48F",
		Created: note.Timestamp{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
	})

	view := stripANSIString(m.View())
	if !strings.Contains(view, "groceries") {
		t.Fatalf("missing title:\n%s", view)
	}
	if !strings.Contains(view, "milk") {
		t.Fatalf("missing content line:\n%s", view)
	}
	// The indented line keeps its leading whitespace.
	found := false
	for _, line := range strings.Split(view, "\n") {
		if strings.HasPrefix(line, "  eggs (indented)") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("indentation not preserved:\n%s", view)
	}
}

func TestEditKeyEmitsEditRequest(t *testing.T) {
	m := NewModel("viewer")
	m.SetNote(note.Note{ID: "a", Title: "x", Color: "#91F48F"})

	_, cmd := m.Update(tea.KeyPressMsg{Text: "e", Code: 'e'})
	if cmd == nil {
		t.Fatalf("expected a command from 'e'")
	}
	if _, ok := cmd().(events.EditRequestMsg); !ok {
		t.Fatalf("expected EditRequestMsg, got %T", cmd())
	}
}

func TestDeleteKeyEmitsDeleteRequest(t *testing.T) {
	m := NewModel("viewer")
	m.SetNote(note.Note{ID: "a", Title: "x", Color: "#91F48F"})

	_, cmd := m.Update(tea.KeyPressMsg{Text: "d", Code: 'd'})
	if cmd == nil {
		t.Fatalf("expected a command from 'd'")
	}
	if _, ok := cmd().(events.DeleteRequestMsg); !ok {
		t.Fatalf("expected DeleteRequestMsg, got %T", cmd())
	}
}
