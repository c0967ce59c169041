package store

import (
	"time"

	"tableflip.dev/keep/pkg/note"
)

// document is the wire shape written to the store. The id is positional (it
// lives in the storage key, not the payload), so it is stripped on write and
// re-attached from the key on read.
type document struct {
	Owner   string         `json:"owner"`
	Title   string         `json:"title"`
	Content string         `json:"content,omitempty"`
	Color   string         `json:"color"`
	Created note.Timestamp `json:"created,omitempty"`
	Updated note.Timestamp `json:"updated,omitempty"`
}

func toDocument(n *note.Note) document {
	return document{
		Owner:   n.Owner,
		Title:   n.Title,
		Content: n.Content,
		Color:   n.Color,
		Created: n.Created,
		Updated: n.Updated,
	}
}

// toNote attaches the store-assigned id and defaults timestamps that are
// transiently unset immediately after a write.
func (d document) toNote(id string, now time.Time) *note.Note {
	n := &note.Note{
		ID:      id,
		Owner:   d.Owner,
		Title:   d.Title,
		Content: d.Content,
		Color:   d.Color,
		Created: d.Created,
		Updated: d.Updated,
	}
	if n.Created.IsZero() {
		n.Created = note.Timestamp{Time: now}
	}
	if n.Updated.IsZero() {
		n.Updated = n.Created
	}
	return n
}
