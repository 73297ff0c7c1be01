package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database/seed"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// setup points the XDG directories at a temp dir and writes a config that
// logs to stderr and has no text generation provider.
func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	cfg := config.Default()
	cfg.LLM.Provider = config.ProviderNone
	cfg.Logging.File = ""
	cfg.Logging.Level = config.LogLevelError
	cfg.Database.BackupIntervalHours = 0

	path := filepath.Join(dir, "pantry.toml")
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd(BuildInfo{Version: "1.2.3", BuildTime: "today"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func dbPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(os.Getenv("XDG_DATA_HOME"), config.AppDir, "pantry.db")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "pantry 1.2.3 (built today)\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestUnknownConfig(t *testing.T) {
	setup(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "status")
	var loadErr *config.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("expected a LoadError, got %v", err)
	}
}

func TestMigrate(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "--config", cfg, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "Schema is at version 1 of 1") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = execute(t, "--config", cfg, "migrate", "status")
	if err != nil {
		t.Fatalf("migrate status: %v", err)
	}
	if !strings.Contains(out, "001") || !strings.Contains(out, "applied") {
		t.Errorf("expected 001 to be applied, got %q", out)
	}

	out, err = execute(t, "--config", cfg, "migrate", "down")
	if err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if !strings.Contains(out, "Rolled back version 1, schema is at version 0") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = execute(t, "--config", cfg, "migrate", "status")
	if err != nil {
		t.Fatalf("migrate status: %v", err)
	}
	if !strings.Contains(out, "pending") {
		t.Errorf("expected 001 to be pending, got %q", out)
	}
}

func TestSeedAndStatus(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "--config", cfg, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "0 items") || !strings.Contains(out, "(empty)") || !strings.Contains(out, "(nothing planned)") {
		t.Errorf("expected an empty pantry, got:\n%s", out)
	}

	out, err = execute(t, "--config", cfg, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.HasPrefix(out, "Seeded ") {
		t.Errorf("unexpected output %q", out)
	}

	_, err = execute(t, "--config", cfg, "seed")
	if !errors.Is(err, seed.ErrNotEmpty) {
		t.Errorf("expected ErrNotEmpty on a second seed, got %v", err)
	}

	if _, err := execute(t, "--config", cfg, "seed", "--reset", "--seed", "7"); err != nil {
		t.Fatalf("seed --reset: %v", err)
	}

	out, err = execute(t, "--config", cfg, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if strings.Contains(out, "(nothing planned)") {
		t.Errorf("expected planned meals after seeding, got:\n%s", out)
	}
	if !strings.Contains(out, " | ") {
		t.Errorf("expected meal plan titles, got:\n%s", out)
	}
}

func TestBackup(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "--config", cfg, "backup")
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	path := strings.TrimSpace(strings.TrimPrefix(out, "Backup written to "))
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected backup file at %q: %v", path, err)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath(t)), "backups") {
		t.Errorf("expected backup next to the database, got %q", path)
	}
}

func TestDoctor(t *testing.T) {
	cfg := setup(t)

	out, err := execute(t, "--config", cfg, "doctor")
	if err != nil {
		t.Fatalf("doctor on a fresh setup: %v", err)
	}
	if !strings.Contains(out, "does not exist yet") {
		t.Errorf("expected missing database warning, got:\n%s", out)
	}
	if !strings.Contains(out, "provider is none") {
		t.Errorf("expected provider warning, got:\n%s", out)
	}

	if _, err := execute(t, "--config", cfg, "backup"); err != nil {
		t.Fatalf("backup: %v", err)
	}
	out, err = execute(t, "--config", cfg, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !strings.Contains(out, "database    ✓") || !strings.Contains(out, "backups     ✓") {
		t.Errorf("expected database and backups to pass, got:\n%s", out)
	}
}

func TestDoctor_CorruptDatabase(t *testing.T) {
	cfg := setup(t)

	path := dbPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, bytes.Repeat([]byte("not a database "), 100), 0640); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", cfg, "doctor")
	if !errors.Is(err, errProblems) {
		t.Errorf("expected problems, got %v", err)
	}
	if !strings.Contains(out, "database    ✗") {
		t.Errorf("expected database check to fail, got:\n%s", out)
	}

	out, err = execute(t, "--config", cfg, "doctor", "--quiet")
	if !errors.Is(err, errProblems) {
		t.Errorf("expected problems, got %v", err)
	}
	if out != "" {
		t.Errorf("expected no output with --quiet, got %q", out)
	}
}
