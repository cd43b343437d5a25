package system

import (
	"os"

	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	// The bell goes to stderr so it does not interleave with the renderer
	alerter := focus.NewAsyncAlerter(ctx.Alerter(os.Stderr))
	defer alerter.Wait()

	return tui.Run(ctx.Store, ctx.Clock, alerter)
}
