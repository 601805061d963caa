package update

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sandeepkv93/weekplan/internal/commands"
)

// ConfigFilename is looked up in the working directory at startup.
const ConfigFilename = "weekplan.toml"

type Config struct {
	DefaultFile string `toml:"default_file"`
	Autosave    bool   `toml:"autosave"`
	LogLevel    string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		DefaultFile: commands.DefaultFilename,
		Autosave:    true,
		LogLevel:    "info",
	}
}

// LoadConfig layers an optional TOML file over the defaults and
// environment variables over both. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, err
			}
		}
	}
	return ConfigFromEnv(cfg), nil
}

func ConfigFromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("WEEKPLAN_FILE")); v != "" {
		cfg.DefaultFile = v
	}
	if v, ok := getEnvBool("WEEKPLAN_AUTOSAVE"); ok {
		cfg.Autosave = v
	}
	if v := strings.TrimSpace(os.Getenv("WEEKPLAN_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
