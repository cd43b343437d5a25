package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/cli/backups"
	"github.com/julianstephens/timecompass/internal/cli/settings"
	"github.com/julianstephens/timecompass/internal/cli/system"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/storage"
	"github.com/julianstephens/timecompass/internal/utils"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.db or .json) or PostgreSQL connection string. Use 'postgres' to read the connection string from ${env_db} or the OS keyring." type:"string" default:"${default_config}" env:"TIMECOMPASS_CONFIG"`
	Debug   bool   `help:"Enable debug logging." env:"TIMECOMPASS_DEBUG"`

	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Status   cli.StatusCmd        `cmd:"" help:"Print the progress windows."`
	Focus    cli.FocusCmd         `cmd:"" help:"Run a focus session in the terminal."`
	Settings settings.SettingsCmd `cmd:"" help:"View or change settings."`
	Init     system.InitCmd       `cmd:"" help:"Initialize timecompass storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage settings backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send a desktop notification through the tray companion."`
}

// storageMode says how much of the store a command needs before it runs.
type storageMode int

const (
	storageLoaded storageMode = iota
	storageOpened             // the command initializes or inspects storage itself
	storageNone
)

func modeFor(command string) storageMode {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "init", "doctor":
		return storageOpened
	case "keyring", "notify":
		return storageNone
	default:
		return storageLoaded
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		errors.Fatal(err)
	}
}

func run(args []string) error {
	var app CLI
	parser, err := kong.New(&app,
		kong.Name(constants.AppName),
		kong.Description("Progress bars for your day, week, semester and life, with a focus timer."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"env_db":         constants.EnvDBConnection,
		},
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	command := kctx.Command()
	mode := modeFor(command)

	var store storage.Provider
	if mode != storageNone {
		if store, err = storage.Open(app.Config); err != nil {
			return err
		}
		defer store.Close()
	}

	if err := logger.Init(logger.Config{
		Debug:     app.Debug,
		ConfigDir: configDir(app.Config, store),
		Quiet:     strings.HasPrefix(command, "tui"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Close()
	logger.Debug("Starting command", "command", command, "version", constants.Version)

	if mode == storageLoaded {
		if err := storage.LoadOrInit(store); err != nil {
			return err
		}
	}

	return kctx.Run(cli.NewContext(store))
}

// configDir is where logs go: beside a file store, otherwise the user's
// config directory.
func configDir(config string, store storage.Provider) string {
	if store != nil && store.GetConfigPath() != constants.PostgresConfigPath {
		return utils.ConfigDir(store.GetConfigPath())
	}
	if storage.Detect(config) != storage.BackendPostgres {
		if path, err := utils.ExpandPath(config); err == nil {
			return utils.ConfigDir(path)
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName)
	}
	return filepath.Join(os.TempDir(), constants.AppName)
}
