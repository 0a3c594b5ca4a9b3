// Package config loads the leadkey configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	// Bindings is the path to the bindings JSON file.
	Bindings string `toml:"bindings"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`

	// DebugFile is an optional explicit log file path.
	DebugFile string `toml:"debug_file"`

	// MaxLogFiles caps the number of rotated log files kept around.
	MaxLogFiles int `toml:"max_log_files"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Bindings:    defaultBindingsPath(),
		MaxLogFiles: 20,
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "leadkey.toml"
	}
	return filepath.Join(dir, "leadkey", "leadkey.toml")
}

// Load reads configuration from the given path, filling unset fields
// with defaults. A missing file is not an error; the defaults are
// returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.Bindings == "" {
		cfg.Bindings = defaultBindingsPath()
	}
	if cfg.MaxLogFiles == 0 {
		cfg.MaxLogFiles = 20
	}
	return cfg, nil
}

func defaultBindingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bindings.json"
	}
	return filepath.Join(dir, "leadkey", "bindings.json")
}
