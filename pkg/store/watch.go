package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Persistence.Watch when the owner's bucket changes.
// Watchers re-fetch on receipt; the event deliberately carries no payload
// so a dropped event only costs one redundant refresh.
type Event struct {
	Owner string
}

// Watch streams change events for one owner until ctx is cancelled. Callers
// should drain the returned channel to avoid blocking the watcher. The
// channel is closed once ctx is done or the watcher encounters an
// unrecoverable error.
func (p *persistence) Watch(ctx context.Context, owner string) (<-chan Event, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, errors.New("store: watch owner required")
	}
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	// The owner's bucket may not exist yet; it gets picked up via the base
	// path's create events once the first note is written.
	bucket := filepath.Join(p.basePath, toOwner(owner))
	watchingBucket := false
	if info, err := os.Stat(bucket); err == nil && info.IsDir() {
		if err := watcher.Add(bucket); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", bucket, err)
		}
		watchingBucket = true
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next refresh
				// picks up the changes. This keeps filesystem storms from
				// blocking the watcher goroutine.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a refresh to keep clients in sync
				// even if we cannot classify the change precisely.
				throttle.Enqueue(Event{Owner: owner}, send)
				_ = err
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if !watchingBucket && evt.Op&fsnotify.Create == fsnotify.Create {
					if filepath.Clean(evt.Name) == bucket {
						if err := watcher.Add(bucket); err != nil {
							fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", bucket, err)
						} else {
							watchingBucket = true
						}
						throttle.Enqueue(Event{Owner: owner}, send)
						continue
					}
				}

				// Changes in other owners' buckets never reach this
				// subscriber.
				if p.ownerForPath(evt.Name) != owner {
					continue
				}

				throttle.Enqueue(Event{Owner: owner}, send)
			}
		}
	}()

	return events, nil
}

// ownerForPath derives the owning identity from a diskv path.
func (p *persistence) ownerForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return ""
	}
	if rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	return fromOwner(parts[0])
}

// eventThrottle coalesces rapid change notifications so consumers refresh
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Owner] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for owner := range pending {
		send(Event{Owner: owner})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
