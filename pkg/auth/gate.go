package auth

import (
	"errors"
	"sync"
)

// Gate resolves current-identity state for the application. It wraps a
// Provider and adds the startup "resolving" phase: Resolving reports true
// until the first auth event (or an explicit Resolve) arrives, so the UI can
// show a blocking spinner instead of flashing the sign-in surface.
type Gate struct {
	provider Provider

	mu        sync.RWMutex
	current   *Identity
	resolving bool
	subs      map[int]func(*Identity)
	nextSub   int

	unsubscribe func()
}

// NewGate wires a Gate to the provider's auth-change feed.
func NewGate(p Provider) (*Gate, error) {
	if p == nil {
		return nil, errors.New("auth: provider required")
	}
	g := &Gate{
		provider:  p,
		resolving: true,
		subs:      make(map[int]func(*Identity)),
	}
	g.unsubscribe = p.Subscribe(g.onAuthChange)
	return g, nil
}

// Resolve pulls the provider's persisted identity and ends the resolving
// phase. Call once at startup.
func (g *Gate) Resolve() {
	g.onAuthChange(g.provider.Current())
}

func (g *Gate) onAuthChange(ident *Identity) {
	g.mu.Lock()
	g.current = ident
	g.resolving = false
	subs := make([]func(*Identity), 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	// Subscribers run synchronously so sign-out clears dependent state
	// before control returns to the caller.
	for _, fn := range subs {
		fn(ident)
	}
}

// Current returns the signed-in identity, or nil.
func (g *Gate) Current() *Identity {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// Resolving reports whether the initial auth state is still unknown.
func (g *Gate) Resolving() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.resolving
}

// Subscribe registers a callback invoked on every identity change.
func (g *Gate) Subscribe(fn func(*Identity)) (cancel func()) {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}
}

// SignOut signs the provider out. Gate subscribers observe the identity
// loss before this returns.
func (g *Gate) SignOut() error {
	return g.provider.SignOut()
}

// Close detaches the Gate from the provider feed.
func (g *Gate) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}
