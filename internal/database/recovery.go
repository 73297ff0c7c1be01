package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Outcome is the end state of a Recover call.
type Outcome int

const (
	// OutcomeHealthy means the file passed the integrity check, possibly after a WAL replay.
	OutcomeHealthy Outcome = iota
	// OutcomeRestored means the file was replaced by the newest valid backup.
	OutcomeRestored
	// OutcomeFailed means nothing could bring the file back.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHealthy:
		return "healthy"
	case OutcomeRestored:
		return "restored"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryStep records one attempted phase.
type RecoveryStep struct {
	Name     string
	OK       bool
	Detail   string
	Duration time.Duration
}

// RecoveryReport describes what Recover did.
type RecoveryReport struct {
	Outcome    Outcome
	Path       string
	BackupUsed string
	Steps      []RecoveryStep
}

// ErrUnrecoverable is returned when every recovery phase failed.
var ErrUnrecoverable = errors.New("database could not be recovered")

// Recover checks the database file at path before it is opened. A missing
// file is fine (first run). A failing file gets a WAL replay and then, if
// backupDir is set, the newest backup that passes its own integrity check.
func Recover(ctx context.Context, path, backupDir string) (*RecoveryReport, error) {
	report := &RecoveryReport{Path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		report.Steps = append(report.Steps, RecoveryStep{Name: "exists", OK: true, Detail: "no database yet"})
		return report, nil
	}

	if report.step("integrity_check", func() (string, error) { return integrityOf(ctx, path) }) {
		return report, nil
	}
	slog.Warn("database failed integrity check", "path", path)

	if _, err := os.Stat(path + "-wal"); err == nil {
		if report.step("wal_replay", func() (string, error) { return replayWAL(ctx, path) }) &&
			report.step("integrity_after_wal", func() (string, error) { return integrityOf(ctx, path) }) {
			slog.Info("database recovered from WAL", "path", path)
			return report, nil
		}
	}

	if backupDir != "" {
		var used string
		ok := report.step("restore_backup", func() (string, error) {
			var err error
			used, err = restoreNewestBackup(ctx, path, backupDir)
			return used, err
		})
		if ok {
			report.Outcome = OutcomeRestored
			report.BackupUsed = used
			slog.Warn("database restored from backup", "path", path, "backup", used)
			return report, nil
		}
	}

	report.Outcome = OutcomeFailed
	return report, ErrUnrecoverable
}

func (r *RecoveryReport) step(name string, fn func() (string, error)) bool {
	start := time.Now()
	detail, err := fn()
	s := RecoveryStep{Name: name, OK: err == nil, Detail: detail, Duration: time.Since(start)}
	if err != nil {
		s.Detail = err.Error()
	}
	r.Steps = append(r.Steps, s)
	return s.OK
}

func openReadOnly(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
}

func integrityOf(ctx context.Context, path string) (string, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return "", fmt.Errorf("running integrity check: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return "", fmt.Errorf("scanning integrity result: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if len(lines) == 1 && lines[0] == "ok" {
		return "ok", nil
	}
	return "", fmt.Errorf("integrity check failed: %s", strings.Join(lines, "; "))
}

func replayWAL(ctx context.Context, path string) (string, error) {
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return "", fmt.Errorf("checkpointing WAL: %w", err)
	}
	return "checkpoint complete", nil
}

func restoreNewestBackup(ctx context.Context, path, backupDir string) (string, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return "", fmt.Errorf("reading backup directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var candidates []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		if info, err := e.Info(); err == nil {
			candidates = append(candidates, candidate{filepath.Join(backupDir, e.Name()), info.ModTime()})
		}
	}
	if len(candidates) == 0 {
		return "", errors.New("no backups found")
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].mod.After(candidates[j].mod) })

	for _, c := range candidates {
		if _, err := integrityOf(ctx, c.path); err != nil {
			slog.Debug("skipping damaged backup", "path", c.path, "error", err)
			continue
		}

		aside := path + ".corrupted." + time.Now().Format("20060102-150405")
		if err := os.Rename(path, aside); err != nil {
			slog.Warn("could not move damaged database aside", "path", path, "error", err)
		}
		os.Remove(path + "-wal")
		os.Remove(path + "-shm")

		if err := copyFile(c.path, path); err != nil {
			return "", fmt.Errorf("copying backup: %w", err)
		}
		return c.path, nil
	}
	return "", errors.New("no backup passed the integrity check")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Diagnostics is a read-only look at a database file for `pantry doctor`.
type Diagnostics struct {
	Path          string
	Exists        bool
	SizeBytes     int64
	ModTime       time.Time
	WALExists     bool
	WALSizeBytes  int64
	SQLiteVersion string
	JournalMode   string
	PageCount     int64
	FreelistCount int64
	QuickCheck    string
	OpenError     string
}

// Diagnose inspects the file at path without modifying it.
func Diagnose(ctx context.Context, path string) (*Diagnostics, error) {
	d := &Diagnostics{Path: path}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return d, nil
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	d.Exists = true
	d.SizeBytes = info.Size()
	d.ModTime = info.ModTime()

	if wal, err := os.Stat(path + "-wal"); err == nil {
		d.WALExists = true
		d.WALSizeBytes = wal.Size()
	}

	db, err := openReadOnly(path)
	if err != nil {
		d.OpenError = err.Error()
		return d, nil
	}
	defer db.Close()

	probes := []struct {
		query string
		dest  any
	}{
		{"SELECT sqlite_version()", &d.SQLiteVersion},
		{"PRAGMA journal_mode", &d.JournalMode},
		{"PRAGMA page_count", &d.PageCount},
		{"PRAGMA freelist_count", &d.FreelistCount},
		{"PRAGMA quick_check", &d.QuickCheck},
	}
	for _, p := range probes {
		if err := db.QueryRowContext(ctx, p.query).Scan(p.dest); err != nil {
			d.OpenError = err.Error()
			break
		}
	}

	return d, nil
}
