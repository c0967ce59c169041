// Package teaui hosts the Bubble Tea program for the keep TUI.
package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/auth"
	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/cache"
	"tableflip.dev/keep/pkg/tui/components/editor"
	"tableflip.dev/keep/pkg/tui/components/home"
	"tableflip.dev/keep/pkg/tui/components/login"
	"tableflip.dev/keep/pkg/tui/components/search"
	"tableflip.dev/keep/pkg/tui/components/viewer"
	"tableflip.dev/keep/pkg/tui/events"
	"tableflip.dev/keep/pkg/tui/nav"
	"tableflip.dev/keep/pkg/tui/theme"
)

// Model is the program root. It owns the auth gate, the synced note cache,
// and the navigator; the screen components are pure views over that state
// and talk back through event messages.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	svc      *app.Service
	provider auth.Provider
	gate     *auth.Gate
	cache    *cache.Cache
	syncer   *cache.Syncer

	navm *nav.Machine

	login  *login.Model
	home   *home.Model
	editor *editor.Model
	viewer *viewer.Model
	search *search.Model

	settings     *settingsOverlay
	settingsOpen bool

	identity *auth.Identity
	authCh   chan *auth.Identity
	unsub    func()

	theme  theme.Theme
	status string

	termWidth  int
	termHeight int
}

func New(svc *app.Service, provider auth.Provider, gate *auth.Gate, mode cache.Mode) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	c := cache.New("notes")
	syncer := &cache.Syncer{
		Service: svc,
		Cache:   c,
		Mode:    mode,
	}

	m := &Model{
		ctx:      ctx,
		cancel:   cancel,
		svc:      svc,
		provider: provider,
		gate:     gate,
		cache:    c,
		syncer:   syncer,
		navm:     nav.New(),
		login:    login.NewModel("login"),
		home:     home.NewModel("home"),
		editor:   editor.NewModel("editor"),
		viewer:   viewer.NewModel("viewer"),
		search:   search.NewModel("search"),
		settings: newSettingsOverlay(),
		theme:    theme.Default(),
		authCh:   make(chan *auth.Identity, 16),
	}

	m.unsub = gate.Subscribe(func(ident *auth.Identity) {
		select {
		case m.authCh <- ident:
		default:
		}
	})

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForAuth(),
		m.waitForCache(),
		resolveAuthCmd(m.gate),
		m.login.Init(),
	)
}

func (m *Model) owner() string {
	if m.identity == nil {
		return ""
	}
	return m.identity.ID
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		return m, nil

	case events.AuthChangedMsg:
		cmds = append(cmds, m.handleAuthChanged(msg.Identity)...)
		cmds = append(cmds, m.waitForAuth())
		return m, tea.Batch(cmds...)

	case events.AuthSubmitMsg:
		m.login.SetPending(true)
		return m, signInCmd(m.provider, msg.Email, msg.Password, msg.SignUp)

	case events.FederatedSignInMsg:
		m.login.SetPending(true)
		return m, federatedSignInCmd(m.provider, msg.Provider)

	case events.ResetPasswordMsg:
		m.login.SetPending(true)
		return m, resetPasswordCmd(m.provider, msg.Email)

	case authResultMsg:
		m.login.SetPending(false)
		if msg.err != nil {
			m.login.SetError(authMessage(msg.err))
		}
		return m, nil

	case identitySetMsg:
		m.navm.SetLoading(false)
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		}
		m.refreshLists()
		return m, nil

	case events.NoteChangeMsg, events.NotesReloadedMsg:
		m.refreshLists()
		return m, m.waitForCache()

	case events.SyncErrorMsg:
		m.status = "ERR: sync " + msg.Err.Error()
		return m, m.waitForCache()

	case cacheClosedMsg:
		return m, nil

	case events.AddNoteMsg:
		m.navm.AddNote(note.PickColor(m.svc.Rand))
		if subject, ok := m.navm.Subject(); ok {
			m.editor.SetNote(subject)
			return m, m.editor.Init()
		}
		return m, nil

	case events.OpenNoteMsg:
		m.navm.OpenNote(msg.Note)
		m.viewer.SetNote(msg.Note)
		return m, nil

	case events.OpenSearchMsg:
		m.navm.OpenSearch()
		m.search.Reset()
		m.search.SetNotes(m.cache.Snapshot())
		return m, m.search.Init()

	case events.EditRequestMsg:
		m.navm.Edit()
		if subject, ok := m.navm.Subject(); ok {
			m.editor.SetNote(subject)
			return m, m.editor.Init()
		}
		return m, nil

	case events.SaveRequestMsg:
		return m, m.handleSaveRequest(msg.Title, msg.Content)

	case events.BackRequestMsg:
		m.navm.Back(msg.Title, msg.Content)
		m.editor.SetConfirming(m.navm.EditorState() == nav.EditorConfirmingDiscard)
		return m, nil

	case events.DiscardRequestMsg:
		m.navm.ChooseDiscard()
		m.editor.SetConfirming(false)
		return m, nil

	case events.DeleteRequestMsg:
		if m.navm.RequestDelete() != nav.EffectDelete {
			return m, nil
		}
		subject, ok := m.navm.Subject()
		if !ok {
			return m, nil
		}
		return m, deleteCmd(m.ctx, m.syncer, m.owner(), subject.ID)

	case saveResultMsg:
		m.editor.SetSaving(false)
		if msg.err != nil {
			m.navm.SaveFailed()
			m.editor.SetError("Save failed: " + msg.err.Error())
			return m, nil
		}
		m.navm.SaveSucceeded(*msg.note)
		if m.navm.Screen() == nav.ScreenEditor {
			m.editor.SetNote(*msg.note)
		}
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.status = "ERR: delete " + msg.err.Error()
			return m, nil
		}
		m.navm.DeleteSucceeded()
		return m, nil

	case events.LogoutMsg:
		return m, signOutCmd(m.gate)

	case events.UpdateEmailMsg:
		return m, updateEmailCmd(m.provider, msg.NewEmail)

	case updateEmailResultMsg:
		if msg.err != nil {
			m.settings.SetError(authMessage(msg.err))
			return m, nil
		}
		m.settingsOpen = false
		m.status = "Email updated to " + msg.email
		if m.identity != nil {
			m.identity.Email = msg.email
			m.home.SetIdentity(msg.email)
		}
		return m, nil

	case settingsCancelledMsg:
		m.settingsOpen = false
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.routeToActive(msg)
}

func (m *Model) handleAuthChanged(ident *auth.Identity) []tea.Cmd {
	var cmds []tea.Cmd
	m.identity = ident

	if ident == nil {
		m.navm.Logout()
		m.settingsOpen = false
		m.login.Reset()
		m.home.SetIdentity("")
		m.status = ""
		cmds = append(cmds, setIdentityCmd(m.ctx, m.syncer, ""))
		cmds = append(cmds, m.login.Init())
		return cmds
	}

	m.login.Reset()
	m.home.SetIdentity(ident.Email)
	m.navm.SetLoading(true)
	cmds = append(cmds, setIdentityCmd(m.ctx, m.syncer, ident.ID))
	return cmds
}

func (m *Model) handleSaveRequest(title, content string) tea.Cmd {
	var effect nav.Effect
	if m.navm.EditorState() == nav.EditorConfirmingDiscard {
		effect = m.navm.ChooseSave()
	} else {
		effect = m.navm.RequestSave()
	}
	if effect != nav.EffectSave {
		return nil
	}
	subject, ok := m.navm.Subject()
	if !ok {
		return nil
	}
	m.editor.SetConfirming(false)
	m.editor.SetSaving(true)
	return saveCmd(m.ctx, m.syncer, m.owner(), subject, title, content)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.gate.Resolving() {
		return nil
	}

	if m.identity == nil {
		_, cmd := m.login.Update(msg)
		return cmd
	}

	if m.settingsOpen {
		return m.settings.Update(msg)
	}

	if m.navm.InfoVisible() {
		m.navm.HideInfo()
		return nil
	}

	switch m.navm.Screen() {
	case nav.ScreenHome:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "i":
			m.navm.ShowInfo()
			return nil
		case "ctrl+e":
			m.settingsOpen = true
			return m.settings.Open(m.identity.Email)
		}
		_, cmd := m.home.Update(msg)
		return cmd
	case nav.ScreenEditor:
		_, cmd := m.editor.Update(msg)
		return cmd
	case nav.ScreenViewer:
		_, cmd := m.viewer.Update(msg)
		return cmd
	case nav.ScreenSearch:
		_, cmd := m.search.Update(msg)
		return cmd
	}
	return nil
}

// routeToActive forwards non-key messages (blinks, ticks) to the component
// that owns the focused input.
func (m *Model) routeToActive(msg tea.Msg) tea.Cmd {
	if m.identity == nil {
		_, cmd := m.login.Update(msg)
		return cmd
	}
	if m.settingsOpen {
		return m.settings.Update(msg)
	}
	switch m.navm.Screen() {
	case nav.ScreenEditor:
		_, cmd := m.editor.Update(msg)
		return cmd
	case nav.ScreenSearch:
		_, cmd := m.search.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) refreshLists() {
	snapshot := m.cache.Snapshot()
	m.home.SetNotes(snapshot)
	m.search.SetNotes(snapshot)
	if subject, ok := m.navm.Subject(); ok && !subject.Draft() {
		if fresh, found := m.cache.Get(subject.ID); found {
			m.viewer.SetNote(fresh)
		}
	}
}

func (m *Model) applySizes() {
	w, h := m.termWidth, m.termHeight
	m.login.SetSize(w, h)
	m.home.SetSize(w, h)
	m.editor.SetSize(w, h)
	m.viewer.SetSize(w, h)
	m.search.SetSize(w, h)
	m.settings.SetSize(w/2, h/2)
}

func (m *Model) View() string {
	if m.gate.Resolving() {
		return m.place(m.theme.Text.Faint.Render("Loading..."))
	}

	if m.identity == nil {
		return m.login.View()
	}

	if m.settingsOpen {
		return m.place(m.settings.View())
	}

	if m.navm.InfoVisible() {
		return m.place(m.infoView())
	}

	var body string
	switch m.navm.Screen() {
	case nav.ScreenHome:
		if m.navm.Loading() {
			body = m.theme.Text.Faint.Render("Loading notes...")
		} else {
			body = m.home.View()
		}
	case nav.ScreenEditor:
		body = m.editor.View()
	case nav.ScreenViewer:
		body = m.viewer.View()
	case nav.ScreenSearch:
		body = m.search.View()
	}

	if m.status != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "",
			m.theme.Footer.Status.Render(m.status))
	}
	return body
}

func (m *Model) infoView() string {
	t := m.theme
	return t.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		t.Modal.Title.Render("Keep"),
		"",
		t.Modal.Body.Render("Notes that follow you around."),
		t.Modal.Body.Render("Changes sync to your account as you make them."),
		"",
		t.Footer.Help.Render("press any key to close"),
	))
}

func (m *Model) place(content string) string {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return content
	}
	return lipgloss.Place(m.termWidth, m.termHeight,
		lipgloss.Center, lipgloss.Center, content)
}

// Close releases the gate subscription and any background sync.
func (m *Model) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	m.syncer.Close()
	m.cancel()
}

// authMessage maps provider errors to the inline copy shown on the form.
func authMessage(err error) string {
	switch {
	case auth.IsCode(err, auth.CodeInvalidCredentials):
		return "Wrong email or password."
	case auth.IsCode(err, auth.CodeEmailInUse):
		return "An account already exists for that email."
	case auth.IsCode(err, auth.CodeNoAccount):
		return "No account found for that email."
	case auth.IsCode(err, auth.CodeWeakPassword):
		return "Password must be at least 6 characters."
	case auth.IsCode(err, auth.CodeRequiresRecentLogin):
		return "Please sign in again before changing your email."
	case auth.IsCode(err, auth.CodeUnsupported):
		return "That sign-in method is not available here."
	default:
		return err.Error()
	}
}

// Run launches the interactive TUI program.
func Run(svc *app.Service, provider auth.Provider, mode cache.Mode) error {
	gate, err := auth.NewGate(provider)
	if err != nil {
		return err
	}
	m := New(svc, provider, gate, mode)
	defer m.Close()
	defer gate.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
