package auth

// Identity is the authenticated user as seen by the rest of the
// application. The ID is the sole partition key for note ownership.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider is the authentication collaborator. Implementations notify
// subscribers with the new identity (or nil on sign-out) whenever the
// signed-in account changes.
type Provider interface {
	SignUp(email, password string) (*Identity, error)
	SignIn(email, password string) (*Identity, error)

	// SignInWithProvider performs federated sign-in. Providers that have no
	// federation backing return an Error with CodeUnsupported.
	SignInWithProvider(name string) (*Identity, error)

	ResetPassword(email string) error

	// UpdateEmail changes the signed-in account's email. Providers enforce a
	// session freshness window and return CodeRequiresRecentLogin past it.
	UpdateEmail(newEmail string) error

	SignOut() error

	// Current returns the signed-in identity, or nil.
	Current() *Identity

	// Subscribe registers a callback invoked on every auth change. The
	// returned cancel func removes the subscription.
	Subscribe(fn func(*Identity)) (cancel func())
}
