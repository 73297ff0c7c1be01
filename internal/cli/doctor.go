package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database"
)

const (
	checkOK   = "✓"
	checkWarn = "⚠"
	checkFail = "✗"
)

// checkResult is the outcome of one doctor check.
type checkResult struct {
	Name    string
	Status  string
	Details string
}

func doctorCmd(flags *globalFlags) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, API key, database and backups",
		Long: `Run read-only health checks. The database file is inspected without
being opened for writing.

Examples:
  pantry doctor           # full report
  pantry doctor --quiet   # exit code only (0=healthy, 1=problems)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				results := []checkResult{
					checkConfig(e),
					checkProvider(e.cfg),
					checkDatabase(ctx, e.cfg),
					checkBackups(e.cfg),
				}

				failed := false
				for _, r := range results {
					if r.Status == checkFail {
						failed = true
					}
				}

				if !quiet {
					printResults(cmd.OutOrStdout(), results)
				}
				if failed {
					return fmt.Errorf("doctor: %w", errProblems)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit code")
	return cmd
}

func printResults(out io.Writer, results []checkResult) {
	fmt.Fprintln(out, "Check       Status")
	fmt.Fprintln(out, "──────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-11s %s\n", r.Name, colorStatus(r.Status))
	}

	var details []string
	for _, r := range results {
		if r.Details != "" {
			details = append(details, fmt.Sprintf("  %s %s: %s", colorStatus(r.Status), r.Name, r.Details))
		}
	}
	if len(details) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Join(details, "\n"))
	}
}

func colorStatus(status string) string {
	switch status {
	case checkOK:
		return color.New(color.FgGreen).Sprint(status)
	case checkWarn:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return color.New(color.FgRed).Sprint(status)
	}
}

func checkConfig(e *env) checkResult {
	r := checkResult{Name: "config", Status: checkOK, Details: e.cfgPath}
	if e.cfgPath == "" {
		r.Status = checkWarn
		r.Details = "using built-in defaults, could not write a config file"
	}
	if err := e.cfg.Validate(); err != nil {
		r.Status = checkFail
		r.Details = err.Error()
	}
	return r
}

func checkProvider(cfg *config.Config) checkResult {
	r := checkResult{Name: "llm", Status: checkOK}
	if cfg.LLM.Provider == config.ProviderNone {
		r.Status = checkWarn
		r.Details = "provider is none; drafting and suggestions are disabled"
		return r
	}
	if _, err := cfg.LLM.APIKey(); err != nil {
		r.Status = checkWarn
		r.Details = fmt.Sprintf("%s: %v", cfg.LLM.Provider, err)
		return r
	}
	r.Details = fmt.Sprintf("%s (%s)", cfg.LLM.Provider, cfg.LLM.ResolvedModel())
	return r
}

func checkDatabase(ctx context.Context, cfg *config.Config) checkResult {
	r := checkResult{Name: "database", Status: checkOK}

	path, err := config.EnsureDataDir(cfg)
	if err != nil {
		r.Status = checkFail
		r.Details = err.Error()
		return r
	}

	d, err := database.Diagnose(ctx, path)
	switch {
	case err != nil:
		r.Status = checkFail
		r.Details = err.Error()
	case !d.Exists:
		r.Status = checkWarn
		r.Details = fmt.Sprintf("%s does not exist yet; it is created on first run", path)
	case d.OpenError != "":
		r.Status = checkFail
		r.Details = d.OpenError
	case d.QuickCheck != "ok":
		r.Status = checkFail
		r.Details = "quick_check: " + d.QuickCheck
	default:
		r.Details = fmt.Sprintf("%s, %d KiB, journal %s, SQLite %s",
			path, d.SizeBytes/1024, d.JournalMode, d.SQLiteVersion)
	}
	return r
}

func checkBackups(cfg *config.Config) checkResult {
	r := checkResult{Name: "backups", Status: checkOK}

	dir, err := config.BackupDir(cfg)
	if err != nil {
		r.Status = checkWarn
		r.Details = err.Error()
		return r
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		r.Status = checkWarn
		r.Details = err.Error()
		return r
	}

	var (
		count  int
		newest time.Time
		name   string
	)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".db" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		count++
		if info.ModTime().After(newest) {
			newest, name = info.ModTime(), entry.Name()
		}
	}

	if count == 0 {
		r.Status = checkWarn
		r.Details = fmt.Sprintf("no backups in %s yet", dir)
		return r
	}
	r.Details = fmt.Sprintf("%d in %s, newest %s", count, dir, name)
	return r
}
