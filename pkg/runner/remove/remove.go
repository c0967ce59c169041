package remove

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/keep/pkg/app"
)

type Remove struct {
	Owner string
	ID    string

	Service *app.Service
}

func (r *Remove) Do(ctx context.Context) error {
	if err := r.Service.Delete(ctx, r.Owner, r.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Deleted %s\n", r.ID)
	return nil
}
