package system

import (
	"github.com/julianstephens/onehabit/internal/cli"
	"github.com/julianstephens/onehabit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	return tui.Run(ctx.Tracker, user)
}
