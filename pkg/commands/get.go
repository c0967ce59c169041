package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/commands/options"
	"tableflip.dev/keep/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get [query...]",
		Short: "List notes, or search them by keyword",
		Long: "Without arguments, lists the signed-in account's notes most\n" +
			"recent first. With a query, matches the keyword against titles\n" +
			"and content, case-insensitively. With --id, shows one note in\n" +
			"full.",
		Example: `
keep get
keep get book
keep get --id 171dff69-f8b9-9dca-0000-123456789abc
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProvider()
			if err != nil {
				return err
			}
			owner, err := currentOwner(p)
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			g := get.Get{
				Owner:   owner,
				ID:      io.ID,
				Query:   strings.Join(args, " "),
				ShowID:  io.ShowID,
				Service: svc,
			}
			return g.Do(context.Background())
		},
	}

	options.AddIDArgs(cmd, io)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
