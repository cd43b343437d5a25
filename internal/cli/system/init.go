package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/models"
)

type InitCmd struct {
	Force bool `help:"Discard existing settings and start over from the defaults."`
}

// Run creates the storage and applies pending migrations. It is safe to run
// again on initialized storage.
func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	remote := path == constants.PostgresConfigPath

	if c.Force && !remote {
		if err := c.removeFile(ctx, path); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	if c.Force && remote {
		// Remote storage is reset in place
		if err := ctx.Store.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		ctx.Println("Reset settings to defaults.")
	}

	logger.Info("Storage initialized", "path", path, "force", c.Force)
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, path)
	return nil
}

func (c *InitCmd) removeFile(ctx *cli.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing storage: %w", err)
	}

	// Close first so the file is not held open
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing storage: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing storage: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(path + suffix)
	}
	ctx.Printf("Deleted existing storage at: %s\n", path)
	return nil
}
