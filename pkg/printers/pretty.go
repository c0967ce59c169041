package printers

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	isatty "github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/keep/pkg/note"
)

type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca-0000-123456789abc  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" note")
	default:
		_, _ = c.Println(" notes")
	}
}

// Notes renders the list with a swatch column, title, content preview, and
// last-updated stamp.
func (pp *PrettyPrint) Notes(notes ...*note.Note) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60

	for _, n := range notes {
		cells := []interface{}{swatch(n.Color), n.Title, preview(n.Content), n.Updated.String()}
		if pp.ShowID {
			cells = append([]interface{}{n.ID}, cells...)
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Note renders a single note in full: header row, then verbatim content.
func (pp *PrettyPrint) Note(n *note.Note) {
	if n == nil {
		return
	}

	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	if pp.ShowID {
		_, _ = fmt.Fprintf(color.Output, "%s  ", n.ID)
	}
	_, _ = fmt.Fprintf(color.Output, "%s ", swatch(n.Color))
	_, _ = t.Print(n.Title)
	_, _ = f.Printf("  %s\n", n.Updated.String())

	if n.Content != "" {
		_, _ = fmt.Fprintln(color.Output, n.Content)
	}
}

// swatch renders the note's color as a block of that exact color on truecolor
// terminals, degrading through termenv's profile detection elsewhere.
func swatch(hex string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return hex
	}
	p := termenv.ColorProfile()
	return termenv.String("██").Foreground(p.Color(hex)).String()
}

// preview flattens content to its first line, truncated.
func preview(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	const max = 40
	r := []rune(line)
	if len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return line
}
