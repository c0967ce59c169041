package teaui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/auth"
	"tableflip.dev/keep/pkg/store"
	"tableflip.dev/keep/pkg/tui/cache"
	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/nav"
)

type tempConfig string

func (c tempConfig) BasePath() string { return string(c) }

func newTestModel(t *testing.T) (*Model, *auth.LocalProvider) {
	t.Helper()

	p, err := store.Load(tempConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	svc := &app.Service{Persistence: p, Rand: rand.New(rand.NewSource(1))}

	provider, err := auth.NewLocalProvider(t.TempDir())
	if err != nil {
		t.Fatalf("local provider: %v", err)
	}
	gate, err := auth.NewGate(provider)
	if err != nil {
		t.Fatalf("gate: %v", err)
	}

	m := New(svc, provider, gate, cache.ModeOnDemand)
	t.Cleanup(m.Close)
	t.Cleanup(gate.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, provider
}

// step runs the setIdentity command returned by an auth change so the
// syncer state is settled before assertions.
func (m *Model) step(t *testing.T, ident *auth.Identity) {
	t.Helper()
	for _, cmd := range m.handleAuthChanged(ident) {
		if cmd == nil {
			continue
		}
		if msg := cmd(); msg != nil {
			m.Update(msg)
		}
	}
}

func TestResolvingShowsLoading(t *testing.T) {
	m, _ := newTestModel(t)

	if view := m.View(); !strings.Contains(view, "Loading...") {
		t.Fatalf("expected resolving screen:\n%s", view)
	}
}

func TestNoSessionShowsLogin(t *testing.T) {
	m, _ := newTestModel(t)
	m.gate.Resolve()
	m.step(t, nil)

	if view := m.View(); !strings.Contains(view, "Sign In") {
		t.Fatalf("expected login screen:\n%s", view)
	}
}

func TestSignInLandsOnHome(t *testing.T) {
	m, provider := newTestModel(t)
	ident, err := provider.SignUp("you@example.com", "hunter22")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	m.step(t, ident)

	view := m.View()
	if !strings.Contains(view, "you@example.com") {
		t.Fatalf("expected signed-in header:\n%s", view)
	}
	if !strings.Contains(view, "Create your first note !") {
		t.Fatalf("expected empty home:\n%s", view)
	}
}

func TestAddSaveShowsNoteOnHome(t *testing.T) {
	m, provider := newTestModel(t)
	ident, err := provider.SignUp("you@example.com", "hunter22")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	m.step(t, ident)

	m.Update(events.AddNoteMsg{})
	if m.navm.Screen() != nav.ScreenEditor {
		t.Fatalf("screen = %v, want editor", m.navm.Screen())
	}

	_, cmd := m.Update(events.SaveRequestMsg{Title: "groceries", Content: "milk"})
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	m.Update(cmd())

	// Explicit save keeps the editor open on the now-persisted note.
	if m.navm.Screen() != nav.ScreenEditor {
		t.Fatalf("screen = %v after save, want editor", m.navm.Screen())
	}
	subject, ok := m.navm.Subject()
	if !ok || subject.Draft() {
		t.Fatalf("subject not persisted after save: %+v", subject)
	}

	m.Update(events.BackRequestMsg{Title: "groceries", Content: "milk"})
	if m.navm.Screen() != nav.ScreenHome {
		t.Fatalf("screen = %v after clean back, want home", m.navm.Screen())
	}
	m.refreshLists()
	if view := m.View(); !strings.Contains(view, "groceries") {
		t.Fatalf("expected saved note on home:\n%s", view)
	}
}

func TestLogoutClearsNotes(t *testing.T) {
	m, provider := newTestModel(t)
	ident, err := provider.SignUp("you@example.com", "hunter22")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	m.step(t, ident)

	m.Update(events.AddNoteMsg{})
	_, cmd := m.Update(events.SaveRequestMsg{Title: "secret", Content: ""})
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	m.Update(cmd())

	m.step(t, nil)
	if m.cache.Len() != 0 {
		t.Fatalf("cache holds %d notes after sign-out, want 0", m.cache.Len())
	}
	if view := m.View(); !strings.Contains(view, "Sign In") {
		t.Fatalf("expected login screen after sign-out:\n%s", view)
	}
}
