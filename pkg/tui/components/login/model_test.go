package login

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/keep/pkg/tui/events"
)

func TestSubmitRequiresBothFields(t *testing.T) {
	m := NewModel("login")

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no command for an empty form")
	}
	if m.errText == "" {
		t.Fatalf("expected an inline error for an empty form")
	}
}

func TestSubmitEmitsCredentials(t *testing.T) {
	m := NewModel("login")
	m.email.SetValue("you@example.com")
	m.password.SetValue("hunter22")

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a command from enter")
	}
	msg, ok := cmd().(events.AuthSubmitMsg)
	if !ok {
		t.Fatalf("expected AuthSubmitMsg, got %T", cmd())
	}
	if msg.Email != "you@example.com" || msg.Password != "hunter22" {
		t.Fatalf("submitted %q/%q", msg.Email, msg.Password)
	}
	if msg.SignUp {
		t.Fatalf("expected sign-in mode by default")
	}
}

func TestToggleSwitchesToSignUp(t *testing.T) {
	m := NewModel("login")
	m.email.SetValue("you@example.com")
	m.password.SetValue("hunter22")

	m.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a command from enter")
	}
	msg, ok := cmd().(events.AuthSubmitMsg)
	if !ok {
		t.Fatalf("expected AuthSubmitMsg, got %T", cmd())
	}
	if !msg.SignUp {
		t.Fatalf("expected sign-up mode after toggle")
	}
}

func TestPendingBlocksResubmit(t *testing.T) {
	m := NewModel("login")
	m.email.SetValue("you@example.com")
	m.password.SetValue("hunter22")
	m.SetPending(true)

	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Fatalf("expected no command while a submission is in flight")
	}
}
