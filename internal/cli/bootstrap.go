// Package cli wires configuration, logging and the store into the pantry's
// cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/llm"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version   string
	BuildTime string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
}

// env is what a command gets after bootstrap: the loaded configuration and
// a logger that writes where the configuration says.
type env struct {
	cfg     *config.Config
	cfgPath string
	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			slog.Error("closing", "error", err)
		}
	}
	e.closers = nil
}

// bootstrap loads the configuration and .env secrets and installs the
// default logger. The caller must Close the returned env.
func bootstrap(flags *globalFlags) (*env, error) {
	cfg, cfgPath, err := config.Load(flags.configPath, true)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	e := &env{cfg: cfg, cfgPath: cfgPath}
	if err := e.setupLogging(flags.debug); err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("reading .env", "error", err)
	}

	slog.Debug("configuration loaded", "path", cfgPath, "provider", cfg.LLM.Provider)
	return e, nil
}

// setupLogging sends JSON logs to the configured file, or text logs to
// stderr when logging.file is empty. debug overrides the configured level.
func (e *env) setupLogging(debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else {
		switch e.cfg.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
	}

	logPath, err := config.EnsureLogDir(e.cfg)
	if err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	var handler slog.Handler
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		e.closers = append(e.closers, logFile)
		handler = slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// openStore checks the database file, opens it and applies pending
// migrations. The DB is closed together with the env.
func (e *env) openStore(ctx context.Context) (*database.DB, error) {
	dbPath, err := config.EnsureDataDir(e.cfg)
	if err != nil {
		return nil, fmt.Errorf("ensuring data directory: %w", err)
	}

	backupDir, err := config.BackupDir(e.cfg)
	if err != nil {
		slog.Warn("backups disabled", "error", err)
		backupDir = ""
	}

	report, err := database.Recover(ctx, dbPath, backupDir)
	if err != nil {
		slog.Error("database recovery failed", "path", dbPath, "steps", len(report.Steps))
		return nil, fmt.Errorf("database recovery failed: %w", err)
	}
	if report.Outcome == database.OutcomeRestored {
		slog.Warn("database restored from backup", "backup", report.BackupUsed)
	}

	db, err := database.Open(dbPath, e.cfg.Database, backupDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	e.closers = append(e.closers, db)

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	result, err := migrator.MigrateUp(ctx)
	if err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if len(result.Applied) > 0 {
		slog.Info("applied migrations", "count", len(result.Applied), "to_version", result.ToVersion)
	}

	return db, nil
}

// generator builds the configured text generator. A missing key or a
// provider that fails to start leaves the app usable: drafting and
// suggestions then fail with llm.ErrNotConfigured.
func (e *env) generator(ctx context.Context) llm.TextGenerator {
	key, err := e.cfg.LLM.APIKey()
	if err != nil {
		slog.Warn("text generation disabled", "provider", e.cfg.LLM.Provider, "error", err)
		return llm.Unconfigured
	}

	client, err := llm.New(ctx, e.cfg.LLM, key)
	if err != nil {
		slog.Error("starting text generation client", "provider", e.cfg.LLM.Provider, "error", err)
		return llm.Unconfigured
	}
	e.closers = append(e.closers, client)
	return client
}

// withEnv runs fn with a bootstrapped env and closes it afterwards.
func withEnv(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, e *env) error) error {
	e, err := bootstrap(flags)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, e)
}

// errProblems is returned by doctor so the process exits non-zero.
var errProblems = errors.New("problems found")
