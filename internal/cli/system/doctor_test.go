package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/timecompass/internal/backup"
	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/clock"
	"github.com/julianstephens/timecompass/internal/storage/sqlite"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)

func setupTestDoctorDB(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	s, _ := store.GetSettings()
	s.HasOnboarded = true
	if err := store.SaveSettings(s); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	ctx := &cli.Context{
		Store:  store,
		Clock:  clock.Fixed(testNow),
		Out:    &out,
		Err:    &out,
		Sender: &fakeSender{available: true},
	}
	return ctx, store, &out
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _, out := setupTestDoctorDB(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}
	for _, want := range []string{"✓ Storage reachable: OK", "✓ Schema version: OK", "✓ Tray companion: OK", "⊘ OS keyring: SKIPPED"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_MissingBackupsIsWarning(t *testing.T) {
	ctx, _, out := setupTestDoctorDB(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command should not fail on missing backups: %v", err)
	}
	if !strings.Contains(out.String(), "⚠ Backups present: WARNING") {
		t.Errorf("expected a backup warning:\n%s", out.String())
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, _, out := setupTestDoctorDB(t)

	if _, err := backup.NewManager(ctx.Store.GetConfigPath()).Create(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor command failed with backups present: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("expected backups OK:\n%s", out.String())
	}
}

func TestDoctorCmd_SchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		version int
		want    string
	}{
		{"newer than supported", 999, "newer than supported"},
		{"incomplete", 0, "migrations incomplete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, store, out := setupTestDoctorDB(t)
			db := store.GetDB()
			if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
				t.Fatal(err)
			}
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", tt.version); err != nil {
				t.Fatal(err)
			}

			if err := (&DoctorCmd{}).Run(ctx); err == nil {
				t.Error("doctor command should fail with a mismatched schema")
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestDoctorCmd_UnreachableSkipsStorageChecks(t *testing.T) {
	var out bytes.Buffer
	ctx := &cli.Context{
		Store: sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db")),
		Clock: clock.Fixed(testNow),
		Out:   &out,
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail when storage is missing")
	}
	if !strings.Contains(out.String(), "⊘ Settings validation: SKIPPED (storage not reachable)") {
		t.Errorf("expected dependent checks to be skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_InvalidSettingsFail(t *testing.T) {
	ctx, store, out := setupTestDoctorDB(t)
	s, _ := store.GetSettings()
	s.LifeExpectancy = 0
	if err := store.SaveSettings(s); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail on invalid settings")
	}
	if !strings.Contains(out.String(), "❌ Settings validation: FAIL") {
		t.Errorf("expected a validation failure:\n%s", out.String())
	}
}

func TestDoctorCmd_TrayNotRunningIsWarning(t *testing.T) {
	ctx, _, out := setupTestDoctorDB(t)
	ctx.Sender = &fakeSender{}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("a missing tray companion should not fail doctor: %v", err)
	}
	if !strings.Contains(out.String(), "⚠ Tray companion: WARNING") {
		t.Errorf("expected a tray warning:\n%s", out.String())
	}
}

func TestCheckClockTimezone(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{"sane", testNow, false},
		{"too early", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"too late", time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkClockTimezone(&cli.Context{Clock: clock.Fixed(tt.now)})
			if (err != nil) != tt.wantErr {
				t.Errorf("checkClockTimezone() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
