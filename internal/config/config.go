package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds application configuration.
type Config struct {
	SettleDelay  int `json:"settleDelayMs"`
	RevealDelay  int `json:"revealDelayMs"`
	ExpandDelay  int `json:"expandDelayMs"`
	LockCooldown int `json:"lockCooldownMs"`
	Animation    int `json:"animationMs"`

	Premium       bool   `json:"premium"`
	QuickReaction string `json:"quickReaction,omitempty"`
	// ReactionsFile is a YAML catalogue; empty uses the built-in reactions.
	ReactionsFile string `json:"reactionsFile,omitempty"`
	ChipMode      string `json:"chipMode"`
	// ShowAvatars is a pointer so an absent key keeps the default (on).
	ShowAvatars *bool `json:"showAvatars,omitempty"`
	MaxAvatars  int   `json:"maxAvatars"`

	Simulate         bool `json:"simulate"`
	SimulateInterval int  `json:"simulateIntervalMs"`
}

// Defaults
const (
	DefaultSettleDelayMs      = 350
	DefaultRevealDelayMs      = 16
	DefaultExpandDelayMs      = 700
	DefaultLockCooldownMs     = 1000
	DefaultAnimationMs        = 200
	DefaultChipMode           = "full"
	DefaultMaxAvatars         = 3
	DefaultSimulateIntervalMs = 2500
)

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "reactea")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "reactea")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "reactea")
		}
		return filepath.Join(home, ".config", "reactea")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "reactea")
		}
		return filepath.Join(home, ".config", "reactea")
	}
}

// DefaultPath is the config file inside DefaultConfigDir.
func DefaultPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DebugLogPath is where --debug sends the log output.
func DebugLogPath() string {
	return filepath.Join(DefaultConfigDir(), "debug.log")
}

// Load reads the config file, returning defaults for missing fields.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	return SaveTo(cfg, DefaultPath())
}

// SaveTo writes the config atomically to configPath.
func SaveTo(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

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

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (c *Config) SettleDelayDuration() time.Duration  { return ms(c.SettleDelay) }
func (c *Config) RevealDelayDuration() time.Duration  { return ms(c.RevealDelay) }
func (c *Config) ExpandDelayDuration() time.Duration  { return ms(c.ExpandDelay) }
func (c *Config) LockCooldownDuration() time.Duration { return ms(c.LockCooldown) }
func (c *Config) AnimationDuration() time.Duration    { return ms(c.Animation) }
func (c *Config) SimulateIntervalDuration() time.Duration {
	return ms(c.SimulateInterval)
}

// AvatarsEnabled reports whether chips may draw avatar stacks.
func (c *Config) AvatarsEnabled() bool {
	return c.ShowAvatars == nil || *c.ShowAvatars
}

func defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelayMs
	}
	if cfg.RevealDelay == 0 {
		cfg.RevealDelay = DefaultRevealDelayMs
	}
	if cfg.ExpandDelay == 0 {
		cfg.ExpandDelay = DefaultExpandDelayMs
	}
	if cfg.LockCooldown == 0 {
		cfg.LockCooldown = DefaultLockCooldownMs
	}
	if cfg.Animation == 0 {
		cfg.Animation = DefaultAnimationMs
	}
	if cfg.ChipMode == "" {
		cfg.ChipMode = DefaultChipMode
	}
	if cfg.MaxAvatars == 0 {
		cfg.MaxAvatars = DefaultMaxAvatars
	}
	if cfg.SimulateInterval == 0 {
		cfg.SimulateInterval = DefaultSimulateIntervalMs
	}
}

// Default returns a config with every default applied, for callers that run
// without a config file.
func Default() *Config {
	return defaults()
}
