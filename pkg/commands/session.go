package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/commands/options"
	"tableflip.dev/keep/pkg/runner/session"
)

func addSignUp(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Example: `
keep signup --email you@example.com --password hunter22
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProvider()
			if err != nil {
				return err
			}
			s := session.SignUp{
				Email:    co.Email,
				Password: co.Password,
				Provider: p,
			}
			return s.Do(context.Background())
		},
	}

	options.AddCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		Example: `
keep login --email you@example.com --password hunter22
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProvider()
			if err != nil {
				return err
			}
			s := session.SignIn{
				Email:    co.Email,
				Password: co.Password,
				Provider: p,
			}
			return s.Do(context.Background())
		},
	}

	options.AddCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addResetPassword(topLevel *cobra.Command) {
	email := ""

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Start a password reset for an account",
		Example: `
keep reset-password --email you@example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProvider()
			if err != nil {
				return err
			}
			s := session.ResetPassword{Email: email, Provider: p}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email address.")
	_ = cmd.MarkFlagRequired("email")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the current account",
		Example: `
keep logout
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProvider()
			if err != nil {
				return err
			}
			s := session.SignOut{Provider: p}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Example: `
keep whoami
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProvider()
			if err != nil {
				return err
			}
			s := session.Whoami{ShowID: io.ShowID, Provider: p}
			return s.Do(context.Background())
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
