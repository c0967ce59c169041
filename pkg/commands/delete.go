package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Example: `
keep delete 171dff69-f8b9-9dca-0000-123456789abc
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
			r := remove.Remove{
				Owner:   owner,
				ID:      args[0],
				Service: svc,
			}
			return r.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
