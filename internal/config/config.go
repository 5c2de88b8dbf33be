package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all ccwidget configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	AdminAPI AdminAPIConfig `toml:"admin_api"`
	Plan     PlanConfig     `toml:"plan"`
	Daemon   DaemonConfig   `toml:"daemon"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// DataDirs overrides the default Claude data directory probing.
	DataDirs []string `toml:"data_dirs,omitempty"`
}

// AdminAPIConfig holds Anthropic Admin API settings.
type AdminAPIConfig struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// PlanConfig holds the heuristic quota plan parameters. Defaults reflect a
// Max 5x plan: 50-200 prompts per 5-hour window per Anthropic docs (125 as
// midpoint) and 140-280 weekly hours (210 as midpoint).
type PlanConfig struct {
	Name           string `toml:"name"`
	WindowLimit    int    `toml:"window_limit"`
	WeekLimitHours int    `toml:"week_limit_hours"`
}

// DaemonConfig holds status daemon settings.
type DaemonConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Plan: PlanConfig{
			Name:           "Max 5x",
			WindowLimit:    125,
			WeekLimitHours: 210,
		},
		Daemon: DaemonConfig{
			Addr: "127.0.0.1:8799",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccwidget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccwidget")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAdminAPIKey returns the API key from env var or config, in that order.
func GetAdminAPIKey(cfg Config) string {
	if key := os.Getenv("ANTHROPIC_ADMIN_KEY"); key != "" {
		return key
	}
	return cfg.AdminAPI.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// MaskAPIKey shortens a key for display, keeping the scheme prefix and the
// last four characters.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	prefixLen := 4
	if i := strings.Index(key, "-"); i >= 0 {
		prefixLen = i + 1
	}
	return key[:prefixLen] + "..." + key[len(key)-4:]
}
