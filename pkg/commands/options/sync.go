package options

import (
	"github.com/spf13/cobra"
)

// SyncOptions selects the UI's collection sync strategy.
type SyncOptions struct {
	Mode string
}

func AddSyncModeArg(cmd *cobra.Command, o *SyncOptions) {
	cmd.Flags().StringVar(&o.Mode, "sync", "push",
		"Sync strategy for the note list. One of 'push' or 'on-demand'.")
}
