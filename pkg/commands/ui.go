package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/commands/options"
	"tableflip.dev/keep/pkg/runner/ui"
	"tableflip.dev/keep/pkg/tui/cache"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SyncOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
keep ui
keep ui --sync on-demand
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode cache.Mode
			switch so.Mode {
			case "push", "":
				mode = cache.ModePush
			case "on-demand":
				mode = cache.ModeOnDemand
			default:
				return fmt.Errorf("unknown sync mode %q", so.Mode)
			}

			svc, err := loadService()
			if err != nil {
				return err
			}
			p, err := loadProvider()
			if err != nil {
				return err
			}
			i := ui.UI{Service: svc, Provider: p, Mode: mode}
			return i.Do(context.Background())
		},
	}

	options.AddSyncModeArg(cmd, so)

	topLevel.AddCommand(cmd)
}
