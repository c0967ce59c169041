// Package nav holds the view-navigation state machine: which screen is
// active, which note (if any) is its subject, and the editor's
// unsaved-changes protocol. It performs no I/O; the root model interprets
// the returned effects.
package nav

import (
	"strings"

	"tableflip.dev/keep/pkg/note"
)

// Screen identifies the active view.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenEditor
	ScreenViewer
	ScreenSearch
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenEditor:
		return "editor"
	case ScreenViewer:
		return "viewer"
	case ScreenSearch:
		return "search"
	default:
		return "unknown"
	}
}

// EditorState is the editor's confirmation sub-state.
type EditorState int

const (
	EditorIdle EditorState = iota
	EditorConfirmingDiscard
)

// Effect tells the caller which side effect a transition requires.
type Effect int

const (
	// EffectNone requires nothing.
	EffectNone Effect = iota
	// EffectSave asks the caller to persist the editor's working buffers
	// (Create for a draft subject, Update otherwise) and then report back
	// via SaveSucceeded or SaveFailed.
	EffectSave
	// EffectDelete asks the caller to delete the viewer's subject and then
	// call DeleteSucceeded on success.
	EffectDelete
)

// Machine is the navigator. The zero value is not usable; construct with
// New.
type Machine struct {
	screen Screen
	editor EditorState

	// subject is the note the viewer/editor operates on. A subject with an
	// empty ID is a draft.
	subject    *note.Note
	hasSubject bool

	// returnHome is set when a save was requested through the back gesture,
	// so a successful save leaves the editor.
	returnHome bool

	infoVisible bool
	loading     bool
}

// New returns a machine at the home screen with no subject.
func New() *Machine {
	return &Machine{}
}

func (m *Machine) Screen() Screen           { return m.screen }
func (m *Machine) EditorState() EditorState { return m.editor }
func (m *Machine) InfoVisible() bool        { return m.infoVisible }
func (m *Machine) Loading() bool            { return m.loading }

// Subject returns the current subject note, if any.
func (m *Machine) Subject() (note.Note, bool) {
	if !m.hasSubject || m.subject == nil {
		return note.Note{}, false
	}
	return *m.subject, true
}

func (m *Machine) setSubject(n note.Note) {
	copy := n
	m.subject = &copy
	m.hasSubject = true
}

func (m *Machine) clearSubject() {
	m.subject = nil
	m.hasSubject = false
}

// AddNote opens the editor with a fresh draft carrying the given color.
func (m *Machine) AddNote(color string) {
	if m.screen != ScreenHome {
		return
	}
	m.setSubject(note.Note{Color: color})
	m.screen = ScreenEditor
	m.editor = EditorIdle
	m.returnHome = false
}

// OpenNote shows a persisted note in the viewer. Valid from home and
// search.
func (m *Machine) OpenNote(n note.Note) {
	if m.screen != ScreenHome && m.screen != ScreenSearch {
		return
	}
	m.setSubject(n)
	m.screen = ScreenViewer
}

// OpenSearch switches home to the search screen.
func (m *Machine) OpenSearch() {
	if m.screen != ScreenHome {
		return
	}
	m.screen = ScreenSearch
}

// Edit moves the viewer's subject into the editor.
func (m *Machine) Edit() {
	if m.screen != ScreenViewer || !m.hasSubject {
		return
	}
	m.screen = ScreenEditor
	m.editor = EditorIdle
	m.returnHome = false
}

// Dirty reports whether the working buffers differ from the subject's
// last-known-persisted state. Drafts are dirty once either buffer is
// non-blank.
func (m *Machine) Dirty(title, content string) bool {
	if !m.hasSubject {
		return false
	}
	if m.subject.Draft() {
		return strings.TrimSpace(title) != "" || strings.TrimSpace(content) != ""
	}
	return title != m.subject.Title || content != m.subject.Content
}

// Back leaves the active screen. From the editor with unsaved changes it
// interposes the confirm-discard dialog instead of leaving.
func (m *Machine) Back(title, content string) {
	switch m.screen {
	case ScreenEditor:
		if m.editor == EditorConfirmingDiscard {
			return
		}
		if m.Dirty(title, content) {
			m.editor = EditorConfirmingDiscard
			return
		}
		m.screen = ScreenHome
		m.clearSubject()
	case ScreenViewer, ScreenSearch:
		m.screen = ScreenHome
		m.clearSubject()
	}
}

// ChooseDiscard abandons the draft/edit with no persistence call.
func (m *Machine) ChooseDiscard() {
	if m.screen != ScreenEditor || m.editor != EditorConfirmingDiscard {
		return
	}
	m.editor = EditorIdle
	m.screen = ScreenHome
	m.clearSubject()
}

// ChooseSave resolves the dialog by saving; home follows on success.
func (m *Machine) ChooseSave() Effect {
	if m.screen != ScreenEditor || m.editor != EditorConfirmingDiscard {
		return EffectNone
	}
	m.editor = EditorIdle
	m.returnHome = true
	return EffectSave
}

// RequestSave is the explicit save action: the editor stays open.
func (m *Machine) RequestSave() Effect {
	if m.screen != ScreenEditor || m.editor == EditorConfirmingDiscard {
		return EffectNone
	}
	m.returnHome = false
	return EffectSave
}

// SaveSucceeded installs the persisted note as the subject. If the save was
// triggered through the back gesture the editor closes.
func (m *Machine) SaveSucceeded(n note.Note) {
	if m.screen != ScreenEditor {
		return
	}
	if m.returnHome {
		m.returnHome = false
		m.screen = ScreenHome
		m.clearSubject()
		return
	}
	m.setSubject(n)
}

// SaveFailed keeps the editor open with the draft intact for retry.
func (m *Machine) SaveFailed() {
	m.returnHome = false
}

// RequestDelete asks for deletion of the viewer's subject. Drafts and
// subjects without an id produce no effect.
func (m *Machine) RequestDelete() Effect {
	if m.screen != ScreenViewer || !m.hasSubject || m.subject.Draft() {
		return EffectNone
	}
	return EffectDelete
}

// DeleteSucceeded returns to home with the subject cleared.
func (m *Machine) DeleteSucceeded() {
	if m.screen != ScreenViewer {
		return
	}
	m.screen = ScreenHome
	m.clearSubject()
}

// Logout resets to home from any state.
func (m *Machine) Logout() {
	m.screen = ScreenHome
	m.editor = EditorIdle
	m.returnHome = false
	m.infoVisible = false
	m.clearSubject()
}

// ShowInfo and HideInfo toggle the orthogonal info overlay.
func (m *Machine) ShowInfo() { m.infoVisible = true }
func (m *Machine) HideInfo() { m.infoVisible = false }

// SetLoading toggles the orthogonal loading overlay.
func (m *Machine) SetLoading(v bool) { m.loading = v }
