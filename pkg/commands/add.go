package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/commands/options"
	"tableflip.dev/keep/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	no := &options.NoteOptions{}

	cmd := &cobra.Command{
		Use:   "add <title> [content...]",
		Short: "Add a note",
		Example: `
keep add groceries milk and eggs
keep add "Book notes" --color "#91F48F"
`,
		Args: cobra.MinimumNArgs(1),
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
			a := add.Add{
				Owner:   owner,
				Title:   args[0],
				Content: strings.Join(args[1:], " "),
				Color:   no.Color,
				ShowID:  io.ShowID,
				Service: svc,
			}
			return a.Do(context.Background())
		},
	}

	options.AddColorArg(cmd, no)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
