// Package config loads the pantry's TOML configuration from XDG-compliant
// paths and resolves secrets from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Config holds the complete application configuration.
type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
}

// LLMConfig selects and tunes the recipe-drafting backend.
type LLMConfig struct {
	Provider Provider `toml:"provider"`
	Model    string   `toml:"model"`
	// BaseURL overrides the provider endpoint (OpenAI-compatible providers only).
	BaseURL string `toml:"base_url"`
	// APIKeyEnv names the environment variable holding the key.
	APIKeyEnv   string  `toml:"api_key_env"`
	Language    string  `toml:"language"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// Provider names a text-generation backend.
type Provider string

const (
	ProviderNone   Provider = "none"
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
)

// DefaultModel returns the model used when none is configured.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return "gpt-3.5-turbo"
	case ProviderGroq:
		return "llama-3.3-70b-versatile"
	case ProviderGemini:
		return "gemini-1.5-flash"
	default:
		return ""
	}
}

// DefaultAPIKeyEnv returns the conventional key variable for the provider.
func (p Provider) DefaultAPIKeyEnv() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGroq:
		return "GROQ_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	// Locale drives the collation order of item names (BCP 47, e.g. "sk").
	Locale string `toml:"locale"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeHerb  ColorScheme = "herb"
	ColorSchemeAmber ColorScheme = "amber"
	ColorSchemeMono  ColorScheme = "mono"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	// File is relative to the data directory unless absolute. Empty logs to stderr.
	File string `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("llm: %w", err))
	}
	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks that the LLM configuration is valid.
func (l *LLMConfig) Validate() error {
	var errs []error

	switch l.Provider {
	case ProviderNone, ProviderOpenAI, ProviderGroq, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("invalid provider: %s", l.Provider))
	}

	if l.BaseURL != "" && !strings.HasPrefix(l.BaseURL, "http://") && !strings.HasPrefix(l.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("base_url must be an http(s) URL: %s", l.BaseURL))
	}
	if l.BaseURL != "" && l.Provider == ProviderGemini {
		errs = append(errs, errors.New("base_url is not supported for gemini"))
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		errs = append(errs, errors.New("temperature must be between 0 and 2"))
	}
	if l.MaxTokens < 0 {
		errs = append(errs, errors.New("max_tokens must be non-negative"))
	}
	if strings.TrimSpace(l.Language) == "" {
		errs = append(errs, errors.New("language is required"))
	}

	return errors.Join(errs...)
}

// ResolvedModel returns Model or the provider default.
func (l *LLMConfig) ResolvedModel() string {
	if l.Model != "" {
		return l.Model
	}
	return l.Provider.DefaultModel()
}

// ResolvedAPIKeyEnv returns APIKeyEnv or the provider default.
func (l *LLMConfig) ResolvedAPIKeyEnv() string {
	if l.APIKeyEnv != "" {
		return l.APIKeyEnv
	}
	return l.Provider.DefaultAPIKeyEnv()
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	switch d.ColorScheme {
	case "", ColorSchemeHerb, ColorSchemeAmber, ColorSchemeMono:
	default:
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if d.Locale != "" {
		if _, err := language.Parse(d.Locale); err != nil {
			errs = append(errs, fmt.Errorf("invalid locale %q: %w", d.Locale, err))
		}
	}

	return errors.Join(errs...)
}

// Tag returns the parsed locale, English when unset or invalid.
func (d *DisplayConfig) Tag() language.Tag {
	if tag, err := language.Parse(d.Locale); err == nil {
		return tag
	}
	return language.English
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("invalid log level: %s", l.Level)
	}
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}
	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}
	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	return errors.Join(errs...)
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    ProviderOpenAI,
			Language:    "English",
			Temperature: 0.7,
			MaxTokens:   800,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeHerb,
			Locale:      "en",
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/pantry.log",
		},
		Database: DatabaseConfig{
			Path:                "pantry.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 14,
		},
	}
}
