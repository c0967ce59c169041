package get

import (
	"context"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/printers"
)

type Get struct {
	Owner  string
	ID     string
	Query  string
	ShowID bool

	Service *app.Service
}

func (g *Get) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: g.ShowID}

	if g.ID != "" {
		n, err := g.Service.Get(ctx, g.Owner, g.ID)
		if err != nil {
			return err
		}
		pp.Note(n)
		return nil
	}

	if g.Query != "" {
		notes, err := g.Service.Search(ctx, g.Owner, g.Query)
		if err != nil {
			return err
		}
		pp.TitleWithCount("Matching", len(notes))
		pp.Notes(notes...)
		return nil
	}

	notes, err := g.Service.List(ctx, g.Owner)
	if err != nil {
		return err
	}
	pp.TitleWithCount("Notes", len(notes))
	pp.Notes(notes...)
	return nil
}
