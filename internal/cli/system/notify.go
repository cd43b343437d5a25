package system

import (
	"fmt"

	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/notifier"
)

// NotifyCmd sends a one-off desktop notification through the tray companion.
type NotifyCmd struct {
	DryRun  bool   `help:"Print the notification instead of sending it."`
	Title   string `help:"Notification title."`
	Message string `help:"Notification body."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	title, body := c.Title, c.Message
	if title == "" {
		title = constants.FocusFinishedTitle
	}
	if body == "" {
		body = constants.FocusFinishedBody
	}

	if c.DryRun {
		ctx.Printf("[DryRun] %s: %s\n", title, body)
		return nil
	}

	if ctx.Sender == nil || !ctx.Sender.Available() {
		return fmt.Errorf("%w: start it to receive desktop notifications", notifier.ErrTrayNotRunning)
	}
	if err := ctx.Sender.Send(title, body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	logger.Debug("Notification sent", "title", title)
	ctx.Println("✓ Notification sent")
	return nil
}
