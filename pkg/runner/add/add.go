package add

import (
	"context"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/printers"
)

type Add struct {
	Owner   string
	Title   string
	Content string
	Color   string
	ShowID  bool

	Service *app.Service
}

func (a *Add) Do(ctx context.Context) error {
	n, err := a.Service.Create(ctx, a.Owner, a.Title, a.Content, a.Color)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: a.ShowID}
	pp.Title("Added")
	pp.Notes(n)
	return nil
}
