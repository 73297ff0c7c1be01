package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "pantry.toml"

	// AppDir is the subdirectory used under the XDG config and data homes.
	AppDir = "pantry"
)

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load finds and reads the configuration, in order of precedence:
//  1. explicitPath, if given (and nothing else)
//  2. $XDG_CONFIG_HOME/pantry/pantry.toml (or ~/.config/...)
//  3. ./pantry.toml
//  4. the defaults, written to the XDG path when createDefault is set
//
// It returns the configuration and the path it came from ("" for an
// in-memory default that could not be written).
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := loadFromFile(explicitPath)
		if err != nil {
			return nil, "", &LoadError{Path: explicitPath, Err: err}
		}
		return cfg, explicitPath, nil
	}

	candidates := []string{xdgConfigPath(), filepath.Join(".", DefaultConfigFileName)}
	for _, path := range candidates {
		if path == "" || !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	if !createDefault {
		return nil, "", fmt.Errorf("no configuration file found; searched: %v", candidates)
	}

	cfg := Default()
	target := candidates[1]
	if xdg := candidates[0]; xdg != "" {
		if err := os.MkdirAll(filepath.Dir(xdg), 0750); err == nil {
			target = xdg
		}
	}
	if err := Save(cfg, target); err != nil {
		return cfg, "", nil
	}
	return cfg, target, nil
}

// loadFromFile decodes path over the defaults and validates the result.
func loadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes a configuration to a TOML file.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	header := `# Pantry configuration
#
# API keys are never stored here. Put them in the environment variable
# named by llm.api_key_env, or in a .env file in the working directory.

`
	if _, err := f.WriteString(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}

// xdgConfigPath returns the XDG config file path, or "" without a home directory.
func xdgConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppDir, DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppDir, DefaultConfigFileName)
}

// DataDir returns the XDG data directory for the app, or "" without a home directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", AppDir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// resolve places a relative path under the data directory and creates its
// parent directory.
func resolve(path string) (string, error) {
	if !filepath.IsAbs(path) {
		if dir := DataDir(); dir != "" {
			path = filepath.Join(dir, path)
		}
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", err
		}
	}
	return path, nil
}

// EnsureDataDir returns the database file path, creating its directory.
func EnsureDataDir(cfg *Config) (string, error) {
	path, err := resolve(cfg.Database.Path)
	if err != nil {
		return "", fmt.Errorf("creating database directory: %w", err)
	}
	return path, nil
}

// EnsureLogDir returns the log file path, creating its directory.
// An empty logging.file disables file logging and returns "".
func EnsureLogDir(cfg *Config) (string, error) {
	if cfg.Logging.File == "" {
		return "", nil
	}
	path, err := resolve(cfg.Logging.File)
	if err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return path, nil
}

// BackupDir returns (and creates) the backups directory next to the database.
func BackupDir(cfg *Config) (string, error) {
	dbPath, err := EnsureDataDir(cfg)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	return dir, nil
}
