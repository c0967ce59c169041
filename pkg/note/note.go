package note

import "strings"

// Untitled is stored in place of a blank title. Titles are never persisted
// empty.
const Untitled = "Untitled"

func New(owner, title, content, color string) *Note {
	return &Note{
		Owner:   owner,
		Title:   CoerceTitle(title),
		Content: content,
		Color:   color,
	}
}

// Note is a single persisted note. A note with an empty ID is a draft: it
// exists only in an editor's working state and has never been written to the
// store.
type Note struct {
	ID      string    `json:"-"`
	Owner   string    `json:"owner"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
	Color   string    `json:"color"`
	Created Timestamp `json:"created,omitempty"`
	Updated Timestamp `json:"updated,omitempty"`
}

// Draft reports whether the note has not been persisted yet.
func (n *Note) Draft() bool {
	return n.ID == ""
}

// Matches reports whether the query appears in the title or content,
// case-insensitively. An empty query matches nothing.
func (n *Note) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// CoerceTitle replaces blank or whitespace-only titles with Untitled.
func CoerceTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return Untitled
	}
	return title
}
