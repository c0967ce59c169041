package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/keep/pkg/auth"
	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/cache"
	"tableflip.dev/keep/pkg/tui/events"
)

// authResultMsg reports the outcome of a credential submission. The identity
// itself arrives separately through the gate subscription.
type authResultMsg struct {
	err error
}

// identitySetMsg reports that the syncer finished switching owners.
type identitySetMsg struct {
	owner string
	err   error
}

type saveResultMsg struct {
	note *note.Note
	err  error
}

type deleteResultMsg struct {
	err error
}

type updateEmailResultMsg struct {
	email string
	err   error
}

type cacheClosedMsg struct{}

// resolveAuthCmd pulls the persisted session so the resolving screen can
// give way to either login or home.
func resolveAuthCmd(gate *auth.Gate) tea.Cmd {
	return func() tea.Msg {
		gate.Resolve()
		return nil
	}
}

// waitForAuth reads one identity change from the gate feed. Re-issued after
// each receipt, like the store watch pump.
func (m *Model) waitForAuth() tea.Cmd {
	return func() tea.Msg {
		ident, ok := <-m.authCh
		if !ok {
			return nil
		}
		return events.AuthChangedMsg{Identity: ident}
	}
}

// waitForCache forwards one cache event into the program loop.
func (m *Model) waitForCache() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.cache.Events()
		if !ok {
			return cacheClosedMsg{}
		}
		return msg
	}
}

func signInCmd(provider auth.Provider, email, password string, signUp bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if signUp {
			_, err = provider.SignUp(email, password)
		} else {
			_, err = provider.SignIn(email, password)
		}
		return authResultMsg{err: err}
	}
}

func federatedSignInCmd(provider auth.Provider, name string) tea.Cmd {
	return func() tea.Msg {
		_, err := provider.SignInWithProvider(name)
		return authResultMsg{err: err}
	}
}

func resetPasswordCmd(provider auth.Provider, email string) tea.Cmd {
	return func() tea.Msg {
		return authResultMsg{err: provider.ResetPassword(email)}
	}
}

func signOutCmd(gate *auth.Gate) tea.Cmd {
	return func() tea.Msg {
		if err := gate.SignOut(); err != nil {
			return authResultMsg{err: err}
		}
		return nil
	}
}

func setIdentityCmd(ctx context.Context, syncer *cache.Syncer, owner string) tea.Cmd {
	return func() tea.Msg {
		err := syncer.SetIdentity(ctx, owner)
		return identitySetMsg{owner: owner, err: err}
	}
}

func saveCmd(ctx context.Context, syncer *cache.Syncer, owner string, subject note.Note, title, content string) tea.Cmd {
	return func() tea.Msg {
		var (
			n   *note.Note
			err error
		)
		if subject.Draft() {
			n, err = syncer.Create(ctx, owner, title, content, subject.Color)
		} else {
			n, err = syncer.Update(ctx, owner, subject.ID, title, content)
		}
		return saveResultMsg{note: n, err: err}
	}
}

func deleteCmd(ctx context.Context, syncer *cache.Syncer, owner, id string) tea.Cmd {
	return func() tea.Msg {
		return deleteResultMsg{err: syncer.Delete(ctx, owner, id)}
	}
}

func updateEmailCmd(provider auth.Provider, email string) tea.Cmd {
	return func() tea.Msg {
		return updateEmailResultMsg{email: email, err: provider.UpdateEmail(email)}
	}
}
