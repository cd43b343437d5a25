package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/timecompass/internal/backup"
	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/keyring"
	"github.com/julianstephens/timecompass/internal/storage"
	"github.com/julianstephens/timecompass/internal/validation"
)

// errSkipped marks a check that does not apply to the current setup.
var errSkipped = errors.New("skipped")

// warning is a check result that is reported but does not fail doctor.
type warning struct{ msg string }

func (w warning) Error() string { return w.msg }

func warnf(format string, args ...any) error {
	return warning{msg: fmt.Sprintf(format, args...)}
}

type check struct {
	name     string
	gate     bool // later storage checks are skipped when this one fails
	needsDB  bool
	run      func(*cli.Context) error
	skipNote string
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Storage reachable", gate: true, run: checkStorageReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion, skipNote: "no versioned schema"},
		{name: "Settings record", needsDB: true, run: checkSettingsRecord},
		{name: "Settings validation", needsDB: true, run: checkSettingsValid},
		{name: "Backups present", run: checkBackupsPresent, skipNote: "not supported for this storage"},
		{name: "OS keyring", run: checkKeyring, skipNote: "not using PostgreSQL"},
		{name: "Tray companion", run: checkTray, skipNote: "notifications disabled"},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var w warning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, c.skipNote)
		case errors.As(err, &w):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.gate {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	reporter, ok := ctx.Store.(storage.SchemaReporter)
	if !ok {
		return errSkipped
	}

	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s init')",
			current, latest, constants.AppName)
	}
	return nil
}

func checkSettingsRecord(ctx *cli.Context) error {
	if inspector, ok := ctx.Store.(storage.Inspector); ok {
		has, err := inspector.HasSettings()
		if err != nil {
			return fmt.Errorf("failed to inspect settings: %w", err)
		}
		if !has {
			return warnf("no settings record stored, defaults are in use")
		}
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.HasOnboarded {
		return warnf("onboarding not finished, open the dashboard to complete it")
	}
	return nil
}

func checkSettingsValid(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	result := validation.NewWithClock(ctx.Now).ValidateSettings(settings)
	if result.HasErrors() {
		return errors.New(result.FormatReport())
	}
	if result.HasConflicts() {
		return warning{msg: result.FormatReport()}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store.GetConfigPath() == constants.PostgresConfigPath {
		return errSkipped
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found, consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Store.GetConfigPath() != constants.PostgresConfigPath {
		return errSkipped
	}
	if !keyring.IsAvailable() {
		return warnf("OS keyring is not available, use %s instead", constants.EnvDBConnection)
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	if ctx.Sender == nil {
		return errSkipped
	}
	if !ctx.Sender.Available() {
		return warnf("%s is not running, focus sessions will only ring the terminal bell", constants.NotifierExecutable)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
