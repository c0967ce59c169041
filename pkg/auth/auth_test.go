package auth

import (
	"testing"
	"time"
)

func newTestProvider(t *testing.T) *LocalProvider {
	t.Helper()
	p, err := NewLocalProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestSignUpAndSignIn(t *testing.T) {
	p := newTestProvider(t)

	ident, err := p.SignUp("U1@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if ident.ID == "" {
		t.Fatal("identity has no id")
	}
	if ident.Email != "u1@example.com" {
		t.Fatalf("email not normalized: %q", ident.Email)
	}

	if err := p.SignOut(); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if p.Current() != nil {
		t.Fatal("current identity survives sign out")
	}

	again, err := p.SignIn("u1@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if again.ID != ident.ID {
		t.Fatalf("sign in resolved a different account: %q vs %q", again.ID, ident.ID)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.SignUp("u1@example.com", "hunter22"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := p.SignIn("u1@example.com", "wrong"); !IsCode(err, CodeInvalidCredentials) {
		t.Fatalf("got %v, want invalid-credentials", err)
	}
	if _, err := p.SignIn("nobody@example.com", "hunter22"); !IsCode(err, CodeInvalidCredentials) {
		t.Fatalf("unknown account: got %v, want invalid-credentials", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.SignUp("u1@example.com", "hunter22"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := p.SignUp("u1@example.com", "other-pass"); !IsCode(err, CodeEmailInUse) {
		t.Fatalf("got %v, want email-in-use", err)
	}
}

func TestSignUpWeakPassword(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.SignUp("u1@example.com", "abc"); !IsCode(err, CodeWeakPassword) {
		t.Fatalf("got %v, want weak-password", err)
	}
}

func TestFederatedSignInUnsupported(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.SignInWithProvider("google"); !IsCode(err, CodeUnsupported) {
		t.Fatalf("got %v, want unsupported", err)
	}
}

func TestUpdateEmailFreshness(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.SignUp("u1@example.com", "hunter22"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if err := p.UpdateEmail("new@example.com"); err != nil {
		t.Fatalf("fresh session update: %v", err)
	}
	if got := p.Current().Email; got != "new@example.com" {
		t.Fatalf("email not applied: %q", got)
	}

	// Age the session past the freshness window.
	p.now = func() time.Time { return time.Now().Add(recentLoginWindow + time.Minute) }
	if err := p.UpdateEmail("too-late@example.com"); !IsCode(err, CodeRequiresRecentLogin) {
		t.Fatalf("stale session: got %v, want requires-recent-login", err)
	}
}

func TestSessionPersistsAcrossProviders(t *testing.T) {
	dir := t.TempDir()
	p1, err := NewLocalProvider(dir)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	ident, err := p1.SignUp("u1@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	p2, err := NewLocalProvider(dir)
	if err != nil {
		t.Fatalf("second provider: %v", err)
	}
	restored := p2.Current()
	if restored == nil || restored.ID != ident.ID {
		t.Fatalf("session not restored: %+v", restored)
	}
}

func TestGateResolvesAndNotifies(t *testing.T) {
	p := newTestProvider(t)
	g, err := NewGate(p)
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	defer g.Close()

	if !g.Resolving() {
		t.Fatal("gate should start resolving")
	}

	var seen []*Identity
	cancel := g.Subscribe(func(i *Identity) { seen = append(seen, i) })
	defer cancel()

	g.Resolve()
	if g.Resolving() {
		t.Fatal("still resolving after Resolve")
	}
	if len(seen) != 1 || seen[0] != nil {
		t.Fatalf("expected one nil-identity event, got %v", seen)
	}

	ident, err := p.SignUp("u1@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if len(seen) != 2 || seen[1] == nil || seen[1].ID != ident.ID {
		t.Fatalf("sign-up event missing: %v", seen)
	}
	if cur := g.Current(); cur == nil || cur.ID != ident.ID {
		t.Fatalf("gate current mismatch: %+v", cur)
	}

	if err := g.SignOut(); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	// Synchronous: the identity loss is visible immediately.
	if g.Current() != nil {
		t.Fatal("gate still has identity after sign out")
	}
	if len(seen) != 3 || seen[2] != nil {
		t.Fatalf("sign-out event missing: %v", seen)
	}
}
