package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/commands/options"
	"tableflip.dev/keep/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	no := &options.NoteOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note's title or content",
		Example: `
keep edit 171dff69-f8b9-9dca-0000-123456789abc --title "Book notes"
keep edit 171dff69-f8b9-9dca-0000-123456789abc --content "revised"
`,
		Args: cobra.ExactArgs(1),
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
			e := edit.Edit{
				Owner:   owner,
				ID:      args[0],
				Title:   no.Title,
				Content: no.Content,
				ShowID:  io.ShowID,
				Service: svc,
			}
			return e.Do(context.Background())
		},
	}

	options.AddEditArgs(cmd, no)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
