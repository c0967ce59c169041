package app

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/store"
)

// Service provides high-level note operations. It wraps persistence and the
// entity rules (title coercion, color assignment, id guards) so the TUI and
// CLI runners share logic.
type Service struct {
	Persistence store.Persistence

	// Rand seeds color picks for new notes. Nil uses the shared source.
	Rand *rand.Rand
}

// ErrNoID guards Update/Delete against notes that were never persisted.
// Call sites treat it as a no-op, not a user-facing failure.
var ErrNoID = errors.New("app: note has no id")

// List returns the owner's notes, most recently created first.
func (s *Service) List(ctx context.Context, owner string) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if strings.TrimSpace(owner) == "" {
		return nil, errors.New("app: owner required")
	}
	return s.Persistence.FetchAll(ctx, owner)
}

// Create persists a new note for the owner. Blank titles become "Untitled";
// an empty color draws a random palette swatch.
func (s *Service) Create(ctx context.Context, owner, title, content, color string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if strings.TrimSpace(owner) == "" {
		return nil, errors.New("app: owner required")
	}
	if color == "" {
		color = note.PickColor(s.Rand)
	}
	return s.Persistence.Create(ctx, owner, note.CoerceTitle(title), content, color)
}

// Update rewrites title and content for the owner's note with the given id.
// Color and the created timestamp are never sent. Notes held by a different
// account are reported as missing, never touched.
func (s *Service) Update(ctx context.Context, owner, id, title, content string) (*note.Note, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}
	return s.Persistence.Update(ctx, id, note.CoerceTitle(title), content)
}

// Delete removes the owner's note with the given id. Deleting a note that is
// already gone succeeds; a note held by a different account counts as gone
// and survives.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.Persistence.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// Get returns a single note by id, scoped to the owner. An id that resolves
// to another account's note comes back ErrNotFound so one identity can never
// read or address another's data.
func (s *Service) Get(ctx context.Context, owner, id string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if strings.TrimSpace(owner) == "" {
		return nil, errors.New("app: owner required")
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrNoID
	}
	n, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Owner != owner {
		return nil, store.ErrNotFound
	}
	return n, nil
}

// Search returns the owner's notes whose title or content contains the
// query, case-insensitively. An empty query returns no results.
func (s *Service) Search(ctx context.Context, owner, query string) ([]*note.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	all, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	matched := make([]*note.Note, 0, len(all))
	for _, n := range all {
		if n.Matches(query) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

// Watch subscribes to change notifications for the owner's notes.
func (s *Service) Watch(ctx context.Context, owner string) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx, owner)
}
