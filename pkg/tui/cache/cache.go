package cache

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
)

// Cache maintains the in-memory note collection for the current identity and
// emits typed events on mutation. It mirrors the behavior of a
// Kubernetes-style informer cache: state lives locally, watchers subscribe
// to emitted events, and consumers read consistent snapshots without hitting
// the store. The cache is the only owner of the local list; screens receive
// copies and issue intents.
type Cache struct {
	component events.ComponentID

	mu    sync.RWMutex
	owner string
	notes []note.Note

	eventCh chan tea.Msg
}

// New creates an empty cache that will emit events using the provided
// ComponentID (falls back to "cache" if empty).
func New(component events.ComponentID) *Cache {
	if component == "" {
		component = events.ComponentID("cache")
	}
	return &Cache{
		component: component,
		eventCh:   make(chan tea.Msg, 64),
	}
}

// Events exposes the cache event channel for Bubble Tea subscriptions.
func (c *Cache) Events() <-chan tea.Msg {
	return c.eventCh
}

// Owner returns the identity the cache is currently scoped to.
func (c *Cache) Owner() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owner
}

// SetOwner scopes the cache to a new identity. Changing owner clears the
// list immediately and unconditionally: no notes for a previous identity may
// remain visible.
func (c *Cache) SetOwner(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner == owner {
		return
	}
	c.owner = owner
	c.notes = nil
	c.emit(events.NotesReloadedMsg{Component: c.component, Count: 0})
}

// Clear drops the identity scope and the list.
func (c *Cache) Clear() {
	c.SetOwner("")
}

// Snapshot returns a copy of the current list in display order.
func (c *Cache) Snapshot() []note.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]note.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Get returns the cached note with the given id.
func (c *Cache) Get(id string) (note.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, n := range c.notes {
		if n.ID == id {
			return n, true
		}
	}
	return note.Note{}, false
}

// Len returns the number of cached notes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notes)
}

// ApplySnapshot reconciles the cache with a freshly fetched list for the
// given owner, emitting per-note change events for detected differences.
// Snapshots for a stale identity are dropped so a slow fetch can never leak
// another user's notes into the list.
func (c *Cache) ApplySnapshot(owner string, notes []*note.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if owner != c.owner {
		return
	}

	next := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if n == nil || n.Owner != owner {
			continue
		}
		next = append(next, *n)
	}

	c.diffLocked(c.notes, next)
	c.notes = next
	c.emit(events.NotesReloadedMsg{Component: c.component, Count: len(next)})
}

func (c *Cache) diffLocked(old, next []note.Note) {
	oldByID := make(map[string]note.Note, len(old))
	for _, n := range old {
		oldByID[n.ID] = n
	}

	seen := make(map[string]struct{}, len(next))
	for _, n := range next {
		seen[n.ID] = struct{}{}
		prev, exists := oldByID[n.ID]
		switch {
		case !exists:
			c.emit(events.NoteChangeMsg{
				Component: c.component,
				Action:    events.ChangeCreate,
				Current:   n,
			})
		case prev.Title != n.Title || prev.Content != n.Content || !prev.Updated.Equal(n.Updated.Time):
			p := prev
			c.emit(events.NoteChangeMsg{
				Component: c.component,
				Action:    events.ChangeUpdate,
				Current:   n,
				Previous:  &p,
			})
		}
	}

	for _, n := range old {
		if _, ok := seen[n.ID]; !ok {
			c.emit(events.NoteChangeMsg{
				Component: c.component,
				Action:    events.ChangeDelete,
				Current:   n,
			})
		}
	}
}

func (c *Cache) emit(msg tea.Msg) {
	select {
	case c.eventCh <- msg:
	default:
		// Never block a mutator on a slow consumer; the next reload event
		// re-syncs any dropped diff.
	}
}
