package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/note"
	"tableflip.dev/keep/pkg/tui/events"
)

// Mode selects how the cache tracks the store.
type Mode string

const (
	// ModeOnDemand re-fetches the full list after every mutation.
	ModeOnDemand Mode = "sync-on-demand"
	// ModePush additionally subscribes to store change notifications so
	// writes from other sessions show up without user action.
	ModePush Mode = "sync-push"
)

// Syncer keeps a Cache consistent with the remote store for one identity at
// a time. All create/update/delete traffic for the collection flows through
// it, and it is the only component that calls ApplySnapshot.
type Syncer struct {
	Service *app.Service
	Cache   *Cache
	Mode    Mode

	mu     sync.Mutex
	cancel context.CancelFunc
}

// SetIdentity switches the syncer (and cache) to a new identity. Any active
// subscription for the previous identity is cancelled first so no
// cross-identity data can arrive afterwards. An empty owner clears state
// without loading anything (sign-out).
func (s *Syncer) SetIdentity(ctx context.Context, owner string) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.Cache.SetOwner(owner)
	if owner == "" {
		return nil
	}

	if err := s.Refresh(ctx, owner); err != nil {
		return err
	}

	if s.Mode == ModePush {
		return s.subscribe(owner)
	}
	return nil
}

// Refresh re-derives the cache from the store's current state.
func (s *Syncer) Refresh(ctx context.Context, owner string) error {
	if s.Service == nil {
		return errors.New("cache: service unavailable")
	}
	notes, err := s.Service.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("cache: load notes: %w", err)
	}
	s.Cache.ApplySnapshot(owner, notes)
	return nil
}

// Create persists a new note and reconciles. The draft is the caller's to
// keep on failure.
func (s *Syncer) Create(ctx context.Context, owner, title, content, color string) (*note.Note, error) {
	n, err := s.Service.Create(ctx, owner, title, content, color)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx, owner); err != nil {
		return n, err
	}
	return n, nil
}

// Update rewrites an existing note and reconciles. On failure the cache is
// left untouched: no partial update becomes visible.
func (s *Syncer) Update(ctx context.Context, owner, id, title, content string) (*note.Note, error) {
	n, err := s.Service.Update(ctx, owner, id, title, content)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx, owner); err != nil {
		return n, err
	}
	return n, nil
}

// Delete removes a note and reconciles.
func (s *Syncer) Delete(ctx context.Context, owner, id string) error {
	if err := s.Service.Delete(ctx, owner, id); err != nil {
		return err
	}
	return s.Refresh(ctx, owner)
}

// subscribe starts the push loop: store notifications trigger a refetch and
// snapshot application until the identity changes.
func (s *Syncer) subscribe(owner string) error {
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Service.Watch(ctx, owner)
	if err != nil {
		cancel()
		return fmt.Errorf("cache: subscribe: %w", err)
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		for range ch {
			if err := s.Refresh(ctx, owner); err != nil {
				// Delivered out of band rather than thrown: the UI shows the
				// last-known-good list and logs the failure.
				s.Cache.emit(events.SyncErrorMsg{Component: s.Cache.component, Err: err})
			}
		}
	}()
	return nil
}

// Close cancels any active subscription.
func (s *Syncer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
