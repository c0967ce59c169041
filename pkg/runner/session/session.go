// Package session holds the CLI runners for account operations: sign up,
// sign in, sign out, and whoami.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/keep/pkg/auth"
)

type SignUp struct {
	Email    string
	Password string

	Provider auth.Provider
}

func (s *SignUp) Do(ctx context.Context) error {
	ident, err := s.Provider.SignUp(s.Email, s.Password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Signed up and in as %s\n", ident.Email)
	return nil
}

type SignIn struct {
	Email    string
	Password string

	Provider auth.Provider
}

func (s *SignIn) Do(ctx context.Context) error {
	ident, err := s.Provider.SignIn(s.Email, s.Password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Signed in as %s\n", ident.Email)
	return nil
}

type ResetPassword struct {
	Email string

	Provider auth.Provider
}

func (r *ResetPassword) Do(ctx context.Context) error {
	if err := r.Provider.ResetPassword(r.Email); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Password reset started for %s\n", r.Email)
	return nil
}

type SignOut struct {
	Provider auth.Provider
}

func (s *SignOut) Do(ctx context.Context) error {
	if s.Provider.Current() == nil {
		return errors.New("not signed in")
	}
	if err := s.Provider.SignOut(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, "Signed out")
	return nil
}

type Whoami struct {
	ShowID bool

	Provider auth.Provider
}

func (w *Whoami) Do(ctx context.Context) error {
	ident := w.Provider.Current()
	if ident == nil {
		return errors.New("not signed in")
	}
	if w.ShowID {
		_, _ = fmt.Fprintf(color.Output, "%s  %s\n", ident.ID, ident.Email)
		return nil
	}
	_, _ = fmt.Fprintln(color.Output, ident.Email)
	return nil
}
