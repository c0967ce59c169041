package teaui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/theme"
)

type settingsCancelledMsg struct{}

// settingsOverlay is the account panel: it shows the signed-in email and
// lets the user change it. A stale session gets the requires-recent-login
// message instead of a form error.
type settingsOverlay struct {
	theme theme.Theme

	input   textinput.Model
	email   string
	errMsg  string
	pending bool

	width  int
	height int
}

func newSettingsOverlay() *settingsOverlay {
	ti := textinput.New()
	ti.Placeholder = "New email address"
	ti.CharLimit = 256
	ti.Prompt = "> "
	return &settingsOverlay{
		theme: theme.Default(),
		input: ti,
	}
}

func (o *settingsOverlay) Open(email string) tea.Cmd {
	o.email = email
	o.errMsg = ""
	o.pending = false
	o.input.SetValue("")
	return o.input.Focus()
}

func (o *settingsOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

func (o *settingsOverlay) SetError(text string) {
	o.pending = false
	o.errMsg = text
}

func (o *settingsOverlay) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if o.pending {
				return nil
			}
			email := strings.TrimSpace(o.input.Value())
			if email == "" {
				o.errMsg = "Email cannot be empty"
				return nil
			}
			o.errMsg = ""
			o.pending = true
			return func() tea.Msg {
				return events.UpdateEmailMsg{NewEmail: email}
			}
		case "esc":
			o.input.Blur()
			return func() tea.Msg { return settingsCancelledMsg{} }
		}
	}
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return cmd
}

func (o *settingsOverlay) View() string {
	t := o.theme

	lines := []string{
		t.Modal.Title.Render("Account"),
		"",
		t.Modal.Body.Render("Signed in as " + o.email),
		"",
		t.Form.Label.Render("Change email"),
		o.input.View(),
	}
	if o.errMsg != "" {
		lines = append(lines, "", t.Form.Error.Render(o.errMsg))
	}
	if o.pending {
		lines = append(lines, "", t.Form.Hint.Render("Updating..."))
	}
	lines = append(lines, "", t.Footer.Help.Render("enter update · esc close"))

	return t.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
