package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all bburn configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Aliases    AliasConfig      `toml:"aliases"`
	Forecast   []ForecastEntry  `toml:"forecast"`
	Appearance AppearanceConfig `toml:"appearance"`
	Sheets     SheetsConfig     `toml:"sheets"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultFile       string  `toml:"default_file,omitempty"`
	AdvisoryThreshold float64 `toml:"advisory_threshold"`
	LogLevel          string  `toml:"log_level"`
}

// AppearanceConfig holds theme and display settings.
type AppearanceConfig struct {
	Theme    string `toml:"theme"`
	Currency string `toml:"currency"`
}

// SheetsConfig holds Google Sheets access settings.
type SheetsConfig struct {
	CredentialsFile string `toml:"credentials_file,omitempty"`
	TimeoutSecs     int    `toml:"timeout_secs"`
}

// ServerConfig holds settings for `bburn serve`.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxUploadMB int    `toml:"max_upload_mb"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			AdvisoryThreshold: 85,
			LogLevel:          "info",
		},
		Aliases:  DefaultAliases(),
		Forecast: DefaultForecast(),
		Appearance: AppearanceConfig{
			Theme:    "flexoki-dark",
			Currency: "USD",
		},
		Sheets: SheetsConfig{
			TimeoutSecs: 30,
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8731",
			MaxUploadMB: 10,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bburn")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// Lists replace the defaults instead of merging into them.
	cfg.Aliases = AliasConfig{}
	cfg.Forecast = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := DefaultAliases()
	if len(c.Aliases.Date) == 0 {
		c.Aliases.Date = def.Date
	}
	if len(c.Aliases.Income) == 0 {
		c.Aliases.Income = def.Income
	}
	if len(c.Aliases.Expense) == 0 {
		c.Aliases.Expense = def.Expense
	}
	if len(c.Aliases.Category) == 0 {
		c.Aliases.Category = def.Category
	}
	if len(c.Forecast) == 0 {
		c.Forecast = DefaultForecast()
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.General.AdvisoryThreshold < 0 {
		return errors.New("general.advisory_threshold must not be negative")
	}
	for i, e := range c.Forecast {
		if e.Label == "" {
			return fmt.Errorf("forecast entry %d: label is required", i+1)
		}
		if len(e.Aliases) == 0 {
			return fmt.Errorf("forecast entry %q: at least one alias is required", e.Label)
		}
		if e.Pct <= -1 {
			return fmt.Errorf("forecast entry %q: pct %.3f would project a non-positive amount", e.Label, e.Pct)
		}
	}
	if c.Sheets.TimeoutSecs < 0 {
		return errors.New("sheets.timeout_secs must not be negative")
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-supplied config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetCredentialsFile returns the service-account key path from env var or
// config, in that order.
func GetCredentialsFile(cfg Config) string {
	if path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		return path
	}
	return cfg.Sheets.CredentialsFile
}

// GetLogLevel returns the log level from env var or config, in that order.
func GetLogLevel(cfg Config) string {
	if lvl := os.Getenv("BBURN_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return cfg.General.LogLevel
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
