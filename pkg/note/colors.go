package note

import "math/rand"

// palette is the fixed set of note swatch colors. Colors are assigned once
// at draft creation and never change afterwards.
var palette = []string{
	"#FF9E9E",
	"#91F48F",
	"#FFF599",
	"#9EFFFF",
	"#B69CFF",
	"#FD99FF",
}

// Palette returns a copy of the swatch colors in display order.
func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}

// ValidColor reports whether c is one of the palette values.
func ValidColor(c string) bool {
	for _, p := range palette {
		if p == c {
			return true
		}
	}
	return false
}

// PickColor draws a uniform random palette color from rng. A nil rng uses
// the shared package source, so tests can inject a seeded one.
func PickColor(rng *rand.Rand) string {
	if rng == nil {
		return palette[rand.Intn(len(palette))]
	}
	return palette[rng.Intn(len(palette))]
}
