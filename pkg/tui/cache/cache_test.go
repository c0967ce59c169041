package cache

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
)

func drain(c *Cache) []tea.Msg {
	var msgs []tea.Msg
	for {
		select {
		case m := <-c.Events():
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func stamped(id, owner, title string, t time.Time) *note.Note {
	return &note.Note{
		ID:      id,
		Owner:   owner,
		Title:   title,
		Color:   "#FF9E9E",
		Created: note.Timestamp{Time: t},
		Updated: note.Timestamp{Time: t},
	}
}

func TestApplySnapshotEmitsDiffs(t *testing.T) {
	c := New("test-cache")
	c.SetOwner("u1")
	drain(c)

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	c.ApplySnapshot("u1", []*note.Note{
		stamped("a", "u1", "first", base),
		stamped("b", "u1", "second", base),
	})

	var creates int
	for _, m := range drain(c) {
		if ch, ok := m.(events.NoteChangeMsg); ok && ch.Action == events.ChangeCreate {
			creates++
		}
	}
	if creates != 2 {
		t.Fatalf("got %d create events, want 2", creates)
	}

	// Update one, delete the other.
	updated := stamped("a", "u1", "first, edited", base.Add(time.Minute))
	c.ApplySnapshot("u1", []*note.Note{updated})

	var sawUpdate, sawDelete bool
	for _, m := range drain(c) {
		ch, ok := m.(events.NoteChangeMsg)
		if !ok {
			continue
		}
		switch ch.Action {
		case events.ChangeUpdate:
			if ch.Current.ID != "a" || ch.Previous == nil || ch.Previous.Title != "first" {
				t.Fatalf("bad update event: %+v", ch)
			}
			sawUpdate = true
		case events.ChangeDelete:
			if ch.Current.ID != "b" {
				t.Fatalf("bad delete event: %+v", ch)
			}
			sawDelete = true
		}
	}
	if !sawUpdate || !sawDelete {
		t.Fatalf("missing diff events: update=%v delete=%v", sawUpdate, sawDelete)
	}

	if c.Len() != 1 {
		t.Fatalf("cache holds %d notes, want 1", c.Len())
	}
}

func TestSetOwnerClearsImmediately(t *testing.T) {
	c := New("")
	c.SetOwner("u1")
	c.ApplySnapshot("u1", []*note.Note{stamped("a", "u1", "mine", time.Now())})
	if c.Len() != 1 {
		t.Fatalf("setup: cache holds %d notes", c.Len())
	}

	c.SetOwner("u2")
	if c.Len() != 0 {
		t.Fatal("cache still holds the previous identity's notes")
	}
	if got := c.Snapshot(); len(got) != 0 {
		t.Fatalf("snapshot not empty: %v", got)
	}
}

func TestApplySnapshotDropsStaleOwner(t *testing.T) {
	c := New("")
	c.SetOwner("u2")

	// A fetch for the previous identity resolves late. It must be ignored.
	c.ApplySnapshot("u1", []*note.Note{stamped("a", "u1", "stale", time.Now())})
	if c.Len() != 0 {
		t.Fatal("stale snapshot leaked into the cache")
	}
}

func TestApplySnapshotFiltersForeignNotes(t *testing.T) {
	c := New("")
	c.SetOwner("u1")
	c.ApplySnapshot("u1", []*note.Note{
		stamped("a", "u1", "mine", time.Now()),
		stamped("b", "u2", "not mine", time.Now()),
		nil,
	})
	snap := c.Snapshot()
	if len(snap) != 1 || snap[0].Owner != "u1" {
		t.Fatalf("ownership filter failed: %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New("")
	c.SetOwner("u1")
	c.ApplySnapshot("u1", []*note.Note{stamped("a", "u1", "mine", time.Now())})

	snap := c.Snapshot()
	snap[0].Title = "mutated"
	if in, _ := c.Get("a"); in.Title != "mine" {
		t.Fatal("mutating a snapshot leaked into the cache")
	}
}

func TestGet(t *testing.T) {
	c := New("")
	c.SetOwner("u1")
	c.ApplySnapshot("u1", []*note.Note{stamped("a", "u1", "mine", time.Now())})

	if _, ok := c.Get("a"); !ok {
		t.Fatal("known id not found")
	}
	if _, ok := c.Get("nope"); ok {
		t.Fatal("unknown id found")
	}
}
