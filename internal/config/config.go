package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Config holds application configuration. The token never touches disk: it
// is read from the environment at load time and excluded from serialization.
type Config struct {
	Owner        string `json:"owner"`
	Repo         string `json:"repo"`
	PollInterval int    `json:"pollIntervalMs"`
	DefaultTab   string `json:"defaultTab"` // "review" or "all"
	LogLevel     string `json:"logLevel"`

	Token string `json:"-"`
}

// Defaults
const (
	DefaultPollIntervalMs = 60000
	DefaultTabName        = "review"
	DefaultLogLevel       = "info"
)

// tokenPrefixes are the GitHub token formats the client accepts.
var tokenPrefixes = []string{"ghp_", "github_pat_", "gho_", "ghs_", "ghu_"}

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "reviewcode")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "reviewcode")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "reviewcode")
		}
		return filepath.Join(home, ".config", "reviewcode")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "reviewcode")
		}
		return filepath.Join(home, ".config", "reviewcode")
	}
}

// LogFile returns the path the application logs to. A TUI owns the
// terminal, so logs go to a file next to the config.
func LogFile() string {
	return filepath.Join(DefaultConfigDir(), "reviewcode.log")
}

// Load reads the config file, fills defaults for missing fields, and applies
// environment overrides (GITHUB_OWNER, GITHUB_REPO, GITHUB_TOKEN).
func Load() (*Config, error) {
	configPath := filepath.Join(DefaultConfigDir(), "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaults()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// Save writes the config to disk. The token is never serialized.
func Save(cfg *Config) error {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	tmpPath := configPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config: %w", err)
	}

	return nil
}

// Validate checks that the repository coordinates are present.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("owner is required (config owner or GITHUB_OWNER)")
	}
	if c.Repo == "" {
		return fmt.Errorf("repo is required (config repo or GITHUB_REPO)")
	}
	return nil
}

// ValidateToken checks the token format: non-empty with a recognized GitHub
// prefix. It does not verify the token against the API.
func (c *Config) ValidateToken() error {
	if c.Token == "" {
		return fmt.Errorf("no token set (GITHUB_TOKEN)")
	}
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(c.Token, p) {
			return nil
		}
	}
	return fmt.Errorf("token has no recognized prefix (ghp_, github_pat_, ...)")
}

// PollIntervalDuration returns the configured poll interval as a time.Duration.
func (c *Config) PollIntervalDuration() time.Duration {
	return time.Duration(c.PollInterval) * time.Millisecond
}

func defaults() *Config {
	return &Config{
		PollInterval: DefaultPollIntervalMs,
		DefaultTab:   DefaultTabName,
		LogLevel:     DefaultLogLevel,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollIntervalMs
	}
	if cfg.DefaultTab == "" {
		cfg.DefaultTab = DefaultTabName
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

func applyEnv(cfg *Config) {
	if owner := os.Getenv("GITHUB_OWNER"); owner != "" {
		cfg.Owner = owner
	}
	if repo := os.Getenv("GITHUB_REPO"); repo != "" {
		cfg.Repo = repo
	}
	cfg.Token = os.Getenv("GITHUB_TOKEN")
}
