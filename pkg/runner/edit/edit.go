package edit

import (
	"context"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/printers"
)

type Edit struct {
	Owner   string
	ID      string
	Title   string
	Content string
	ShowID  bool

	Service *app.Service
}

// Do updates the note. Unset fields keep their stored value.
func (e *Edit) Do(ctx context.Context) error {
	title, content := e.Title, e.Content
	if title == "" || content == "" {
		current, err := e.Service.Get(ctx, e.Owner, e.ID)
		if err != nil {
			return err
		}
		if title == "" {
			title = current.Title
		}
		if content == "" {
			content = current.Content
		}
	}

	n, err := e.Service.Update(ctx, e.Owner, e.ID, title, content)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: e.ShowID}
	pp.Title("Updated")
	pp.Notes(n)
	return nil
}
