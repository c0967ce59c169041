package commands

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/auth"
	"tableflip.dev/keep/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "keep",
		Short: base.Wrap80("Personal notes with accounts and background sync."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSignUp(topLevel)
	addLogin(topLevel)
	addResetPassword(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func loadService() (*app.Service, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p}, nil
}

// loadProvider opens the account store next to the note store, so one
// config path governs both.
func loadProvider() (auth.Provider, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return auth.NewLocalProvider(cfg.BasePath() + ".auth")
}

// currentOwner resolves the signed-in account's id for note operations.
func currentOwner(p auth.Provider) (string, error) {
	ident := p.Current()
	if ident == nil {
		return "", errors.New("not signed in, run `keep login` first")
	}
	return ident.ID, nil
}
