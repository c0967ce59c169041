package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const (
	accountsFile = "accounts.json"
	sessionFile  = "session.json"

	pbkdf2Iterations = 10000
	keyLength        = 32
	saltLength       = 16

	// recentLoginWindow bounds how old a session may be for sensitive
	// operations like changing the account email.
	recentLoginWindow = 5 * time.Minute
)

type account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Hash  string `json:"hash"`
	Salt  string `json:"salt"`
}

type session struct {
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// LocalProvider is a file-backed Provider: accounts are stored with PBKDF2
// salted verification hashes, the signed-in session in a sidecar file. It
// stands in for a hosted identity service during local use and in tests.
type LocalProvider struct {
	dir string

	mu      sync.RWMutex
	current *session
	subs    map[int]func(*Identity)
	nextSub int

	now func() time.Time
}

// NewLocalProvider opens (or creates) the provider state under dir and
// restores any persisted session.
func NewLocalProvider(dir string) (*LocalProvider, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("auth: provider directory required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("auth: ensure directory: %w", err)
	}
	p := &LocalProvider{
		dir:  dir,
		subs: make(map[int]func(*Identity)),
		now:  time.Now,
	}
	if s, err := p.loadSession(); err == nil {
		p.current = s
	}
	return p, nil
}

func (p *LocalProvider) SignUp(email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, &Error{Code: CodeInvalidCredentials, Message: "email address is required"}
	}
	if len(password) < 6 {
		return nil, &Error{Code: CodeWeakPassword, Message: "password should be at least 6 characters"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	accounts, err := p.loadAccounts()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return nil, &Error{Code: CodeEmailInUse, Message: "an account already exists for " + email}
		}
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("auth: generate salt: %w", err)
	}
	a := account{
		ID:    uuid.NewString(),
		Email: email,
		Hash:  base64.StdEncoding.EncodeToString(deriveKey(password, salt)),
		Salt:  base64.StdEncoding.EncodeToString(salt),
	}
	accounts = append(accounts, a)
	if err := p.saveAccounts(accounts); err != nil {
		return nil, err
	}
	return p.startSessionLocked(a)
}

func (p *LocalProvider) SignIn(email, password string) (*Identity, error) {
	email = normalizeEmail(email)

	p.mu.Lock()
	defer p.mu.Unlock()

	accounts, err := p.loadAccounts()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email != email {
			continue
		}
		if !verifyPassword(password, a) {
			return nil, &Error{Code: CodeInvalidCredentials, Message: "incorrect email or password"}
		}
		return p.startSessionLocked(a)
	}
	return nil, &Error{Code: CodeInvalidCredentials, Message: "incorrect email or password"}
}

func (p *LocalProvider) SignInWithProvider(name string) (*Identity, error) {
	return nil, &Error{Code: CodeUnsupported, Message: name + " sign-in is not available for local accounts"}
}

func (p *LocalProvider) ResetPassword(email string) error {
	email = normalizeEmail(email)

	p.mu.RLock()
	defer p.mu.RUnlock()

	accounts, err := p.loadAccounts()
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Email == email {
			// A hosted provider would send a reset link here; local accounts
			// have no mail transport.
			return &Error{Code: CodeUnsupported, Message: "password reset is not available for local accounts"}
		}
	}
	return &Error{Code: CodeNoAccount, Message: "no account exists for " + email}
}

func (p *LocalProvider) UpdateEmail(newEmail string) error {
	newEmail = normalizeEmail(newEmail)
	if newEmail == "" {
		return &Error{Code: CodeInvalidCredentials, Message: "email address is required"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return &Error{Code: CodeNoAccount, Message: "not signed in"}
	}
	if p.now().Sub(p.current.IssuedAt) > recentLoginWindow {
		return &Error{Code: CodeRequiresRecentLogin, Message: "this operation is sensitive and requires recent authentication. Log in again before retrying"}
	}

	accounts, err := p.loadAccounts()
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Email == newEmail && a.ID != p.current.AccountID {
			return &Error{Code: CodeEmailInUse, Message: "an account already exists for " + newEmail}
		}
	}
	for i := range accounts {
		if accounts[i].ID == p.current.AccountID {
			accounts[i].Email = newEmail
			if err := p.saveAccounts(accounts); err != nil {
				return err
			}
			p.current.Email = newEmail
			if err := p.saveSession(p.current); err != nil {
				return err
			}
			ident := identityOf(p.current)
			p.notifyLocked(ident)
			return nil
		}
	}
	return &Error{Code: CodeNoAccount, Message: "signed-in account no longer exists"}
}

func (p *LocalProvider) SignOut() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = nil
	if err := os.Remove(filepath.Join(p.dir, sessionFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: clear session: %w", err)
	}
	p.notifyLocked(nil)
	return nil
}

func (p *LocalProvider) Current() *Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return identityOf(p.current)
}

func (p *LocalProvider) Subscribe(fn func(*Identity)) (cancel func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// startSessionLocked establishes a session for the account and notifies
// subscribers. Callers hold p.mu.
func (p *LocalProvider) startSessionLocked(a account) (*Identity, error) {
	s := &session{AccountID: a.ID, Email: a.Email, IssuedAt: p.now()}
	if err := p.saveSession(s); err != nil {
		return nil, err
	}
	p.current = s
	ident := identityOf(s)
	p.notifyLocked(ident)
	return ident, nil
}

func (p *LocalProvider) notifyLocked(ident *Identity) {
	for _, fn := range p.subs {
		fn(ident)
	}
}

func identityOf(s *session) *Identity {
	if s == nil {
		return nil
	}
	return &Identity{ID: s.AccountID, Email: s.Email}
}

func (p *LocalProvider) loadAccounts() ([]account, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, accountsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth: read accounts: %w", err)
	}
	var accounts []account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("auth: parse accounts: %w", err)
	}
	return accounts, nil
}

func (p *LocalProvider) saveAccounts(accounts []account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(p.dir, accountsFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("auth: write accounts: %w", err)
	}
	return os.Rename(tmp, path)
}

func (p *LocalProvider) loadSession() (*session, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, sessionFile))
	if err != nil {
		return nil, err
	}
	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *LocalProvider) saveSession(s *session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.dir, sessionFile), data, 0o600)
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
}

func verifyPassword(password string, a account) bool {
	salt, err := base64.StdEncoding.DecodeString(a.Salt)
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(a.Hash)
	if err != nil {
		return false
	}
	got := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
