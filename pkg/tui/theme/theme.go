package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Card   CardTheme
	Form   FormTheme
	Footer FooterTheme
	Modal  ModalTheme
	Text   TextTheme
}

// HeaderTheme styles screen titles.
type HeaderTheme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
}

// CardTheme styles the home/search note cards.
type CardTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Stamp    lipgloss.Style
}

// FormTheme styles input forms (login, editor, settings).
type FormTheme struct {
	Label lipgloss.Style
	Error lipgloss.Style
	Hint  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// ModalTheme styles centered modal overlays (confirm dialog, info).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// TextTheme styles plain content regions.
type TextTheme struct {
	Body  lipgloss.Style
	Faint lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Header: HeaderTheme{
			Title:    lipgloss.NewStyle().Bold(true),
			Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Card: CardTheme{
			Frame:    lipgloss.NewStyle().Padding(0, 2),
			Selected: lipgloss.NewStyle().Padding(0, 2).Bold(true),
			Stamp:    lipgloss.NewStyle().Faint(true),
		},
		Form: FormTheme{
			Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Hint:  lipgloss.NewStyle().Faint(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Text: TextTheme{
			Body:  lipgloss.NewStyle(),
			Faint: lipgloss.NewStyle().Faint(true),
		},
	}
}

// Swatch returns a style that paints the note's color as a card background
// with a foreground dark or light enough to stay readable on it.
func Swatch(hex string) lipgloss.Style {
	style := lipgloss.NewStyle().Background(lipgloss.Color(hex))
	if c, err := colorful.Hex(hex); err == nil {
		if _, _, l := c.Hcl(); l > 0.6 {
			return style.Foreground(lipgloss.Color("#222222"))
		}
	}
	return style.Foreground(lipgloss.Color("#EEEEEE"))
}
