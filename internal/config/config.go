package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/christopherklint97/contribcal/internal/contributions"
	"github.com/christopherklint97/contribcal/internal/heatmap"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Source  SourceConfig  `toml:"source"`
	Palette PaletteConfig `toml:"palette"`
	Log     LogConfig     `toml:"log"`
}

type SourceConfig struct {
	Username       string `toml:"username"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type PaletteConfig struct {
	Colors []string `toml:"colors"` // exactly 5, level 0 first
}

type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn" or "error"
}

func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			BaseURL:        contributions.DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		Palette: PaletteConfig{
			Colors: append([]string(nil), heatmap.DefaultPalette[:]...),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Timeout returns the HTTP timeout; zero means no client-side limit.
func (c *Config) Timeout() time.Duration {
	if c.Source.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// ColorPalette validates and returns the configured palette.
func (c *Config) ColorPalette() (heatmap.Palette, error) {
	if len(c.Palette.Colors) == 0 {
		return heatmap.DefaultPalette, nil
	}
	p, err := heatmap.NewPalette(c.Palette.Colors)
	if err != nil {
		return p, fmt.Errorf("invalid [palette] colors: %w", err)
	}
	return p, nil
}

// LogLevel maps Log.Level to a slog level, defaulting to warn.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "contribcal"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONTRIBCAL_USERNAME"); v != "" {
		cfg.Source.Username = v
	}
	if v := os.Getenv("CONTRIBCAL_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("CONTRIBCAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DefaultFile renders the config written on first run of `contribcal config`.
func DefaultFile() ([]byte, error) {
	cfg := DefaultConfig()
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling default config: %w", err)
	}
	return out, nil
}

// SaveUsername persists the username to the config file
// using a read-modify-write approach to preserve other settings.
func SaveUsername(username string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	cfg := make(map[string]any)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	src, ok := cfg["source"].(map[string]any)
	if !ok {
		src = make(map[string]any)
	}
	src["username"] = username
	cfg["source"] = src

	if err := EnsureConfigDir(); err != nil {
		return err
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
