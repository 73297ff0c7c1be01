package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// ErrNoAPIKey is returned when the configured key variable is empty.
var ErrNoAPIKey = errors.New("API key not set")

// LoadDotEnv reads KEY=value pairs from the given files (".env" when none
// are given) into the process environment. Variables that are already set
// win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", f, err)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	slog.Debug("loaded env files", "files", present)
	return nil
}

// APIKey returns the key for the configured provider from the environment.
// ProviderNone needs no key and returns "".
func (l *LLMConfig) APIKey() (string, error) {
	if l.Provider == ProviderNone {
		return "", nil
	}
	name := l.ResolvedAPIKeyEnv()
	key := os.Getenv(name)
	if key == "" {
		return "", fmt.Errorf("%w: set %s", ErrNoAPIKey, name)
	}
	return key, nil
}
