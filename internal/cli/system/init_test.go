package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/storage"
	"github.com/julianstephens/timecompass/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	var out bytes.Buffer
	ctx := &cli.Context{Store: store, Out: &out, Err: &out}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx, dbPath, &out
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized timecompass storage at: "+dbPath) {
		t.Errorf("unexpected output: %q", out.String())
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to read settings after init: %v", err)
	}
	if got.HasOnboarded {
		t.Error("fresh storage should not be onboarded")
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := setupTestInitDB(t)
	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	s, _ := ctx.Store.GetSettings()
	s.FocusDuration = 25
	if err := ctx.Store.SaveSettings(s); err != nil {
		t.Fatal(err)
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed (should be idempotent): %v", err)
	}
	got, _ := ctx.Store.GetSettings()
	if got.FocusDuration != 25 {
		t.Errorf("re-running init changed settings: FocusDuration = %d", got.FocusDuration)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, out := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	s, _ := ctx.Store.GetSettings()
	s.FocusDuration = 25
	s.HasOnboarded = true
	if err := ctx.Store.SaveSettings(s); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not recreated after force")
	}
	if !strings.Contains(out.String(), "Deleted existing storage") {
		t.Errorf("expected a deletion notice, got %q", out.String())
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after force: %v", err)
	}
	if got.FocusDuration != models.DefaultSettings().FocusDuration || got.HasOnboarded {
		t.Errorf("settings not reset: %+v", got)
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, _ := setupTestInitDB(t)

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestInitCmd_JSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	ctx := &cli.Context{Store: storage.NewJSONStore(path), Out: &bytes.Buffer{}}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings file not created: %v", err)
	}
}
