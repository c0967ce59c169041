// Package options defines shared flag helpers for CLI commands.
package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/keep/pkg/note"
)

// NoteOptions captures note content flags shared by add and edit.
type NoteOptions struct {
	Title   string
	Content string
	Color   string
}

// AddColorArg wires the palette color flag. Empty means a random pick.
func AddColorArg(cmd *cobra.Command, o *NoteOptions) {
	cmd.Flags().StringVarP(&o.Color, "color", "c", "",
		"Card color, one of "+strings.Join(note.Palette(), " ")+". Random when unset.")
}

// AddEditArgs wires the title/content flags for edit.
func AddEditArgs(cmd *cobra.Command, o *NoteOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Replace the note title.")
	cmd.Flags().StringVar(&o.Content, "content", "",
		"Replace the note content.")
}
