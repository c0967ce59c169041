package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/theme"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// Model renders the sign-in / sign-up surface and emits AuthSubmitMsg when
// the form is submitted. It owns no identity state; whether the form is
// shown at all is the root model's call.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	width  int
	height int

	email    textinput.Model
	password textinput.Model
	focus    int

	signUp  bool
	pending bool
	errText string
}

func NewModel(id events.ComponentID) *Model {
	if id == "" {
		id = events.ComponentID("login")
	}

	email := textinput.New()
	email.Placeholder = "Email Address"
	email.Prompt = ""
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword

	return &Model{
		id:       id,
		theme:    theme.Default(),
		email:    email,
		password: password,
	}
}

func (m *Model) ID() events.ComponentID { return m.id }

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetPending disables submission while an auth call is in flight.
func (m *Model) SetPending(v bool) { m.pending = v }

// SetError shows a failure message inline near the form.
func (m *Model) SetError(text string) { m.errText = text }

// Reset clears the form, typically after a successful sign-in.
func (m *Model) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.errText = ""
	m.pending = false
	m.focus = fieldEmail
	m.applyFocus()
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % fieldCount
			m.applyFocus()
			return m, textinput.Blink
		case "shift+tab", "up":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			m.applyFocus()
			return m, textinput.Blink
		case "enter":
			return m, m.submit()
		case "ctrl+t":
			// Toggle between sign-in and sign-up, like the original's tab
			// pair.
			m.signUp = !m.signUp
			m.errText = ""
			return m, nil
		case "ctrl+g":
			if m.pending {
				return m, nil
			}
			id := m.id
			return m, func() tea.Msg {
				return events.FederatedSignInMsg{Component: id, Provider: "google"}
			}
		case "ctrl+r":
			if m.pending {
				return m, nil
			}
			email := strings.TrimSpace(m.email.Value())
			if email == "" {
				m.errText = "Enter your email first, then press ctrl+r"
				return m, nil
			}
			id := m.id
			return m, func() tea.Msg {
				return events.ResetPasswordMsg{Component: id, Email: email}
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) submit() tea.Cmd {
	if m.pending {
		return nil
	}
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.errText = "Email and password are required"
		return nil
	}
	m.errText = ""
	id := m.id
	signUp := m.signUp
	return func() tea.Msg {
		return events.AuthSubmitMsg{
			Component: id,
			Email:     email,
			Password:  password,
			SignUp:    signUp,
		}
	}
}

func (m *Model) applyFocus() {
	m.email.Blur()
	m.password.Blur()
	switch m.focus {
	case fieldEmail:
		m.email.Focus()
	case fieldPassword:
		m.password.Focus()
	}
}

func (m *Model) View() string {
	t := m.theme

	mode := "Sign In"
	alt := "sign up"
	if m.signUp {
		mode = "Sign Up"
		alt = "sign in"
	}

	lines := []string{
		t.Header.Title.Render("Keep"),
		t.Header.Subtitle.Render("Your thoughts, anywhere, anytime."),
		"",
		t.Header.Title.Render(mode),
		"",
		t.Form.Label.Render("Email"),
		m.email.View(),
		"",
		t.Form.Label.Render("Password"),
		m.password.View(),
		"",
	}

	if m.errText != "" {
		lines = append(lines, t.Form.Error.Render(m.errText), "")
	}
	if m.pending {
		lines = append(lines, t.Form.Hint.Render("Signing in..."), "")
	}

	lines = append(lines, t.Footer.Help.Render(
		"enter submit · ctrl+t "+alt+" · ctrl+g google · ctrl+r forgot password · ctrl+c quit"))

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
