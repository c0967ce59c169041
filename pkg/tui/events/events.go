package events

import (
	"fmt"

	"tableflip.dev/keep/pkg/auth"
	"tableflip.dev/keep/pkg/note"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a new resource was created.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an existing resource changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a resource was removed.
	ChangeDelete ChangeType = "delete"
)

// AuthChangedMsg announces a new identity state (nil identity = signed out).
type AuthChangedMsg struct {
	Identity *auth.Identity
}

// Describe renders the auth state for logs.
func (m AuthChangedMsg) Describe() string {
	if m.Identity == nil {
		return "signed out"
	}
	return fmt.Sprintf("signed in as %q", m.Identity.Email)
}

// AuthSubmitMsg is emitted by the login component when the user submits the
// credential form.
type AuthSubmitMsg struct {
	Component ComponentID
	Email     string
	Password  string
	SignUp    bool
}

// ResetPasswordMsg asks the provider to start a password reset for the
// address in the login form.
type ResetPasswordMsg struct {
	Component ComponentID
	Email     string
}

// FederatedSignInMsg is emitted when the user picks a federated provider.
type FederatedSignInMsg struct {
	Component ComponentID
	Provider  string
}

// NoteChangeMsg announces that a note in the local collection changed,
// regardless of origin (user action or watcher push).
type NoteChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	Current   note.Note
	Previous  *note.Note
}

// Describe implements the logging helper.
func (m NoteChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q id:%q title:%q`, m.Action, m.Current.ID, m.Current.Title)
}

// NotesReloadedMsg signals that the collection was re-derived wholesale and
// consumers should re-read the cache snapshot.
type NotesReloadedMsg struct {
	Component ComponentID
	Count     int
}

// SyncErrorMsg surfaces a background sync failure. The local list stays in
// its last-known-good state.
type SyncErrorMsg struct {
	Component ComponentID
	Err       error
}

// OpenNoteMsg asks the navigator to show a note in the viewer.
type OpenNoteMsg struct {
	Component ComponentID
	Note      note.Note
}

// AddNoteMsg asks the navigator to open the editor with a fresh draft.
type AddNoteMsg struct {
	Component ComponentID
}

// OpenSearchMsg asks the navigator to show the search screen.
type OpenSearchMsg struct {
	Component ComponentID
}

// SaveRequestMsg is emitted by the editor on an explicit save action.
type SaveRequestMsg struct {
	Component ComponentID
	Title     string
	Content   string
}

// BackRequestMsg is emitted when the user backs out of the active screen.
// The editor includes its working buffers so the navigator can decide
// whether to interpose the unsaved-changes dialog.
type BackRequestMsg struct {
	Component ComponentID
	Title     string
	Content   string
}

// DiscardRequestMsg is emitted by the editor when the user abandons unsaved
// changes from the confirm dialog.
type DiscardRequestMsg struct {
	Component ComponentID
}

// EditRequestMsg is emitted by the viewer to switch the subject into the
// editor.
type EditRequestMsg struct {
	Component ComponentID
}

// DeleteRequestMsg is emitted by the viewer to delete the subject note.
type DeleteRequestMsg struct {
	Component ComponentID
}

// LogoutMsg asks the application to sign out.
type LogoutMsg struct {
	Component ComponentID
}

// UpdateEmailMsg is emitted by the settings overlay.
type UpdateEmailMsg struct {
	Component ComponentID
	NewEmail  string
}
