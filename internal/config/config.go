// Package config loads the bar's configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DemoConfig configures the demo server.
type DemoConfig struct {
	// Addr is the listen address for `lumebar serve`.
	Addr string `yaml:"addr"`
	// DataFile overrides the embedded sample document.
	DataFile string `yaml:"data_file"`
}

// Config is the full configuration. Every field has a usable default, so a
// missing config file is not an error.
type Config struct {
	// Source is the data document location: a URL or a file path.
	Source string `yaml:"source"`
	// StatePath is the SQLite file holding persisted UI state. Empty keeps
	// state in memory for the session only.
	StatePath string `yaml:"state_path"`
	// LogPath is the diagnostic log file.
	LogPath string `yaml:"log_path"`
	// ActionEndpoint is the ws:// URL receiving activated data actions.
	// Empty routes them to the log.
	ActionEndpoint string `yaml:"action_endpoint"`
	// Watch reloads the bar when a file-backed source changes.
	Watch bool `yaml:"watch"`

	Demo DemoConfig `yaml:"demo"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "lumebar.yaml"
	}
	return filepath.Join(dir, "lumebar", "config.yaml")
}

func defaults() *Config {
	return &Config{
		LogPath: "lumebar.log",
		Watch:   true,
		Demo: DemoConfig{
			Addr: "localhost:8000",
		},
	}
}

// Load reads the config at path, or the defaults when the file is absent.
// An empty path means the default location.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
