package store

import (
	"context"
	"testing"
	"time"
)

func TestWatchEmitsOwnerChanges(t *testing.T) {
	p := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx, "u1")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	if _, err := p.Create(ctx, "u1", "hello", "world", "#FF9E9E"); err != nil {
		t.Fatalf("create: %v", err)
	}

	select {
	case evt := <-ch:
		if evt.Owner != "u1" {
			t.Fatalf("expected owner u1, got %q", evt.Owner)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatchIgnoresOtherOwners(t *testing.T) {
	p := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Materialize both buckets before subscribing so bucket creation events
	// don't muddy the assertion.
	if _, err := p.Create(ctx, "u1", "mine", "", "#FF9E9E"); err != nil {
		t.Fatalf("create u1: %v", err)
	}
	if _, err := p.Create(ctx, "u2", "theirs", "", "#FF9E9E"); err != nil {
		t.Fatalf("create u2: %v", err)
	}

	ch, err := p.Watch(ctx, "u1")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, err := p.Create(ctx, "u2", "more theirs", "", "#91F48F"); err != nil {
		t.Fatalf("create u2 again: %v", err)
	}

	select {
	case evt := <-ch:
		t.Fatalf("received event for another owner's write: %+v", evt)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := p.Watch(ctx, "u1")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// Drain anything buffered; channel must close shortly after.
			for range ch {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
