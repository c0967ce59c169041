package ui

import (
	"context"

	"tableflip.dev/keep/pkg/app"
	"tableflip.dev/keep/pkg/auth"
	teaui "tableflip.dev/keep/pkg/tui/app"
	"tableflip.dev/keep/pkg/tui/cache"
)

type UI struct {
	Service  *app.Service
	Provider auth.Provider
	Mode     cache.Mode
}

func (u *UI) Do(ctx context.Context) error {
	mode := u.Mode
	if mode == "" {
		mode = cache.ModePush
	}
	return teaui.Run(u.Service, u.Provider, mode)
}
