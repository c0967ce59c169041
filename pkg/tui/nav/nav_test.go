package nav

import (
	"testing"

	"tableflip.dev/keep/pkg/note"
)

func persisted(id, title, content string) note.Note {
	return note.Note{ID: id, Owner: "u1", Title: title, Content: content, Color: "#FF9E9E"}
}

func TestInitialState(t *testing.T) {
	m := New()
	if m.Screen() != ScreenHome {
		t.Fatalf("start screen %v, want home", m.Screen())
	}
	if _, ok := m.Subject(); ok {
		t.Fatal("fresh machine has a subject")
	}
}

func TestAddNoteOpensEditorWithDraft(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")
	if m.Screen() != ScreenEditor {
		t.Fatalf("screen %v, want editor", m.Screen())
	}
	subject, ok := m.Subject()
	if !ok {
		t.Fatal("editor has no subject")
	}
	if !subject.Draft() {
		t.Fatal("add-note subject should be a draft")
	}
	if subject.Color != "#91F48F" {
		t.Fatalf("draft color %q", subject.Color)
	}
}

func TestBackFromCleanEditorGoesHome(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")
	m.Back("", "")
	if m.Screen() != ScreenHome {
		t.Fatalf("screen %v, want home", m.Screen())
	}
	if _, ok := m.Subject(); ok {
		t.Fatal("subject not cleared")
	}
}

func TestBackFromDirtyDraftInterposesDialog(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")

	m.Back("Groceries", "")
	if m.Screen() != ScreenEditor {
		t.Fatalf("screen %v, editor must stay open", m.Screen())
	}
	if m.EditorState() != EditorConfirmingDiscard {
		t.Fatal("confirm-discard dialog not shown")
	}

	// Back again while confirming is a no-op.
	m.Back("Groceries", "")
	if m.EditorState() != EditorConfirmingDiscard {
		t.Fatal("dialog dismissed by repeated back")
	}
}

func TestDialogDiscardAbandonsDraft(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")
	m.Back("Groceries", "list")
	m.ChooseDiscard()
	if m.Screen() != ScreenHome {
		t.Fatalf("screen %v, want home", m.Screen())
	}
	if _, ok := m.Subject(); ok {
		t.Fatal("discarded draft still the subject")
	}
}

func TestDialogSaveThenHome(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")
	m.Back("Groceries", "list")

	if eff := m.ChooseSave(); eff != EffectSave {
		t.Fatalf("effect %v, want save", eff)
	}
	if m.EditorState() != EditorIdle {
		t.Fatal("dialog should close once save is chosen")
	}

	m.SaveSucceeded(persisted("n1", "Groceries", "list"))
	if m.Screen() != ScreenHome {
		t.Fatalf("screen %v after dialog save, want home", m.Screen())
	}
}

func TestExplicitSaveStaysInEditor(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")

	if eff := m.RequestSave(); eff != EffectSave {
		t.Fatalf("effect %v, want save", eff)
	}
	saved := persisted("n1", "Groceries", "list")
	m.SaveSucceeded(saved)

	if m.Screen() != ScreenEditor {
		t.Fatalf("screen %v, explicit save keeps the editor open", m.Screen())
	}
	subject, _ := m.Subject()
	if subject.Draft() {
		t.Fatal("subject still a draft after save")
	}
	if m.Dirty("Groceries", "list") {
		t.Fatal("unsaved-changes flag not cleared by save")
	}
	if !m.Dirty("Groceries!", "list") {
		t.Fatal("further edits should be dirty against the saved subject")
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")
	m.Back("Groceries", "list")
	_ = m.ChooseSave()
	m.SaveFailed()

	if m.Screen() != ScreenEditor {
		t.Fatal("failed save must leave the user in the editor")
	}
	subject, ok := m.Subject()
	if !ok || !subject.Draft() {
		t.Fatal("draft lost after failed save")
	}
}

func TestViewerFlow(t *testing.T) {
	m := New()
	n := persisted("n1", "Book notes", "ch 1")

	m.OpenNote(n)
	if m.Screen() != ScreenViewer {
		t.Fatalf("screen %v, want viewer", m.Screen())
	}

	m.Edit()
	if m.Screen() != ScreenEditor {
		t.Fatalf("screen %v, want editor", m.Screen())
	}
	subject, _ := m.Subject()
	if subject.ID != "n1" {
		t.Fatalf("edit lost the subject id: %q", subject.ID)
	}

	// Unchanged buffers are not dirty for a persisted subject.
	if m.Dirty("Book notes", "ch 1") {
		t.Fatal("unchanged buffers reported dirty")
	}
	if !m.Dirty("Book notes", "ch 2") {
		t.Fatal("changed content not reported dirty")
	}
}

func TestViewerDelete(t *testing.T) {
	m := New()
	m.OpenNote(persisted("n1", "bye", ""))

	if eff := m.RequestDelete(); eff != EffectDelete {
		t.Fatalf("effect %v, want delete", eff)
	}
	m.DeleteSucceeded()
	if m.Screen() != ScreenHome {
		t.Fatalf("screen %v after delete, want home", m.Screen())
	}
	if _, ok := m.Subject(); ok {
		t.Fatal("subject not cleared after delete")
	}
}

func TestDeleteRequiresPersistedSubject(t *testing.T) {
	m := New()
	m.AddNote("#91F48F")
	if eff := m.RequestDelete(); eff != EffectNone {
		t.Fatalf("delete effect on a draft: %v", eff)
	}
}

func TestSearchRoundTrip(t *testing.T) {
	m := New()
	m.OpenSearch()
	if m.Screen() != ScreenSearch {
		t.Fatalf("screen %v, want search", m.Screen())
	}
	m.Back("", "")
	if m.Screen() != ScreenHome {
		t.Fatalf("screen %v, want home", m.Screen())
	}

	// Opening a result from search lands in the viewer.
	m.OpenSearch()
	m.OpenNote(persisted("n1", "hit", ""))
	if m.Screen() != ScreenViewer {
		t.Fatalf("screen %v, want viewer", m.Screen())
	}
}

func TestLogoutFromAnywhere(t *testing.T) {
	setups := []func(m *Machine){
		func(m *Machine) {},
		func(m *Machine) { m.AddNote("#91F48F") },
		func(m *Machine) { m.AddNote("#91F48F"); m.Back("dirty", "") },
		func(m *Machine) { m.OpenNote(persisted("n1", "x", "")) },
		func(m *Machine) { m.OpenSearch() },
		func(m *Machine) { m.ShowInfo() },
	}
	for i, setup := range setups {
		m := New()
		setup(m)
		m.Logout()
		if m.Screen() != ScreenHome {
			t.Fatalf("case %d: screen %v after logout", i, m.Screen())
		}
		if _, ok := m.Subject(); ok {
			t.Fatalf("case %d: subject survives logout", i)
		}
		if m.EditorState() != EditorIdle || m.InfoVisible() {
			t.Fatalf("case %d: overlays survive logout", i)
		}
	}
}
