package options

import (
	"github.com/spf13/cobra"
)

// CredentialOptions carries the email/password pair for account commands.
type CredentialOptions struct {
	Email    string
	Password string
}

func AddCredentialArgs(cmd *cobra.Command, o *CredentialOptions) {
	cmd.Flags().StringVarP(&o.Email, "email", "e", "",
		"Account email address.")
	cmd.Flags().StringVarP(&o.Password, "password", "p", "",
		"Account password.")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}
