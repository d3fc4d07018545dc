package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.SettleDelay != DefaultSettleDelayMs {
		t.Errorf("SettleDelay = %d, want %d", cfg.SettleDelay, DefaultSettleDelayMs)
	}
	if cfg.LockCooldown != DefaultLockCooldownMs {
		t.Errorf("LockCooldown = %d, want %d", cfg.LockCooldown, DefaultLockCooldownMs)
	}
	if cfg.ChipMode != DefaultChipMode {
		t.Errorf("ChipMode = %q, want %q", cfg.ChipMode, DefaultChipMode)
	}
	if !cfg.AvatarsEnabled() {
		t.Error("avatars should default to enabled")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		if cfg.ExpandDelay != DefaultExpandDelayMs {
			t.Errorf("ExpandDelay = %d, want %d", cfg.ExpandDelay, DefaultExpandDelayMs)
		}
		if cfg.MaxAvatars != DefaultMaxAvatars {
			t.Errorf("MaxAvatars = %d, want %d", cfg.MaxAvatars, DefaultMaxAvatars)
		}
	})

	t.Run("preserves non-zero values", func(t *testing.T) {
		cfg := &Config{
			SettleDelay: 500,
			ChipMode:    "short",
			MaxAvatars:  2,
		}
		applyDefaults(cfg)
		if cfg.SettleDelay != 500 {
			t.Errorf("SettleDelay = %d, want 500", cfg.SettleDelay)
		}
		if cfg.ChipMode != "short" {
			t.Errorf("ChipMode = %q, want short", cfg.ChipMode)
		}
		if cfg.MaxAvatars != 2 {
			t.Errorf("MaxAvatars = %d, want 2", cfg.MaxAvatars)
		}
	})
}

func TestDurations(t *testing.T) {
	cfg := defaults()
	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"settle", cfg.SettleDelayDuration(), 350 * time.Millisecond},
		{"reveal", cfg.RevealDelayDuration(), 16 * time.Millisecond},
		{"expand", cfg.ExpandDelayDuration(), 700 * time.Millisecond},
		{"lock", cfg.LockCooldownDuration(), time.Second},
		{"animation", cfg.AnimationDuration(), 200 * time.Millisecond},
		{"simulate", cfg.SimulateIntervalDuration(), 2500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SettleDelay != DefaultSettleDelayMs {
		t.Errorf("SettleDelay = %d, want default", cfg.SettleDelay)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFrom_ShowAvatarsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"showAvatars": false}`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AvatarsEnabled() {
		t.Error("showAvatars=false should disable avatars")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := &Config{
		SettleDelay:   400,
		Premium:       true,
		QuickReaction: "fire",
		ReactionsFile: "/tmp/reactions.yaml",
		ChipMode:      "short",
	}
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.SettleDelay != 400 {
		t.Errorf("SettleDelay = %d, want 400", loaded.SettleDelay)
	}
	if !loaded.Premium {
		t.Error("Premium = false, want true")
	}
	if loaded.QuickReaction != "fire" {
		t.Errorf("QuickReaction = %q, want fire", loaded.QuickReaction)
	}
	if loaded.ChipMode != "short" {
		t.Errorf("ChipMode = %q, want short", loaded.ChipMode)
	}
	if loaded.ExpandDelay != DefaultExpandDelayMs {
		t.Errorf("ExpandDelay = %d, want default after load", loaded.ExpandDelay)
	}
}

func TestDebugLogPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honoured on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DebugLogPath(); got != "/tmp/xdg/reactea/debug.log" {
		t.Errorf("DebugLogPath() = %q", got)
	}
}
