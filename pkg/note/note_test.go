package note

import (
	"math/rand"
	"testing"
)

func TestCoerceTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", Untitled},
		{"   ", Untitled},
		{"\t\n", Untitled},
		{"Groceries", "Groceries"},
		{" padded ", " padded "},
	}
	for _, tt := range tests {
		if got := CoerceTitle(tt.in); got != tt.want {
			t.Errorf("CoerceTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPickColorDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		ca, cb := PickColor(a), PickColor(b)
		if ca != cb {
			t.Fatalf("pick %d diverged: %q vs %q", i, ca, cb)
		}
		if !ValidColor(ca) {
			t.Fatalf("pick %d produced a color outside the palette: %q", i, ca)
		}
	}
}

func TestPickColorNilSource(t *testing.T) {
	if c := PickColor(nil); !ValidColor(c) {
		t.Fatalf("nil source pick outside the palette: %q", c)
	}
}

func TestPaletteIsCopied(t *testing.T) {
	p := Palette()
	if len(p) != 6 {
		t.Fatalf("palette has %d colors, want 6", len(p))
	}
	p[0] = "#000000"
	if Palette()[0] == "#000000" {
		t.Fatal("mutating the returned palette leaked into the package")
	}
}

func TestMatches(t *testing.T) {
	n := &Note{Title: "Book notes", Content: "The Design of Everyday Things"}
	if !n.Matches("book") {
		t.Error("case-insensitive title match failed")
	}
	if !n.Matches("everyday") {
		t.Error("content match failed")
	}
	if n.Matches("") {
		t.Error("empty query must not match")
	}
	if n.Matches("   ") {
		t.Error("whitespace query must not match")
	}
	if n.Matches("trip") {
		t.Error("unrelated query matched")
	}
}

func TestDraft(t *testing.T) {
	n := New("u1", "", "body", "#FF9E9E")
	if !n.Draft() {
		t.Fatal("new note without id should be a draft")
	}
	if n.Title != Untitled {
		t.Fatalf("blank title not coerced, got %q", n.Title)
	}
	n.ID = "abc"
	if n.Draft() {
		t.Fatal("note with id reported as draft")
	}
}
