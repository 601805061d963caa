package update

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultFile != "tasks.json" {
		t.Fatalf("expected default file tasks.json, got %q", cfg.DefaultFile)
	}
	if !cfg.Autosave {
		t.Fatal("expected autosave on by default")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("WEEKPLAN_FILE", "weekly.json")
	t.Setenv("WEEKPLAN_AUTOSAVE", "off")
	t.Setenv("WEEKPLAN_LOG_LEVEL", "DEBUG")

	cfg := ConfigFromEnv(DefaultConfig())
	if cfg.DefaultFile != "weekly.json" {
		t.Fatalf("expected weekly.json, got %q", cfg.DefaultFile)
	}
	if cfg.Autosave {
		t.Fatal("expected autosave disabled")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestConfigFromEnvIgnoresInvalidBool(t *testing.T) {
	t.Setenv("WEEKPLAN_AUTOSAVE", "maybe")
	cfg := ConfigFromEnv(DefaultConfig())
	if !cfg.Autosave {
		t.Fatal("expected invalid value to keep the default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFilename)
	doc := `default_file = "board.json"
autosave = false
log_level = "warn"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.DefaultFile != "board.json" || cfg.Autosave || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFilename))
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFilename)
	if err := os.WriteFile(path, []byte("default_file = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}
