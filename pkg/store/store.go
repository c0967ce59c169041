package store

import (
	"context"
	"errors"

	"tableflip.dev/keep/pkg/note"
)

// ErrNotFound is returned when an id does not resolve to a stored document.
var ErrNotFound = errors.New("store: note not found")

// Persistence is the document-store contract. Documents are partitioned by
// owner; ids are assigned by the store on create and are stable thereafter.
type Persistence interface {
	// Create writes a new document and returns it with its assigned id and
	// store-clock timestamps.
	Create(ctx context.Context, owner, title, content, color string) (*note.Note, error)

	// FetchAll returns the owner's notes, most recently created first.
	FetchAll(ctx context.Context, owner string) ([]*note.Note, error)

	// Get returns the note with the given id.
	Get(ctx context.Context, id string) (*note.Note, error)

	// Update rewrites title and content for the given id and refreshes the
	// updated timestamp. Owner, color, and the created timestamp are left
	// untouched.
	Update(ctx context.Context, id, title, content string) (*note.Note, error)

	// Delete removes the document with the given id.
	Delete(ctx context.Context, id string) error

	// Watch streams change notifications for the owner's bucket until ctx is
	// cancelled.
	Watch(ctx context.Context, owner string) (<-chan Event, error)
}
