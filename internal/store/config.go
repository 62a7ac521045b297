package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config is the user configuration read from <configDir>/config.yaml.
type Config struct {
	// DataDir holds the key-value store, logs and view state.
	// Default: <configDir>/data.
	DataDir string `yaml:"dataDir,omitempty" json:"dataDir"`

	// Backend is one of sqlite|file|memory. Default: sqlite.
	Backend string `yaml:"backend,omitempty" json:"backend"`

	// StorageKey is the key the folder blob is stored under. Default: foldersDataV4.
	StorageKey string `yaml:"storageKey,omitempty" json:"storageKey"`

	Log LogConfig `yaml:"log,omitempty" json:"log"`
	TUI TUIConfig `yaml:"tui,omitempty" json:"tui"`
}

type LogConfig struct {
	// Level is one of debug|info|warn|error. Default: info.
	Level string `yaml:"level,omitempty" json:"level"`
	// File overrides <dataDir>/logs/stepfolio.log. "-" disables logging.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

type TUIConfig struct {
	// Theme is one of auto|light|dark. Default: auto.
	Theme string `yaml:"theme,omitempty" json:"theme"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.stepfolio).
	if v := strings.TrimSpace(os.Getenv("STEPFOLIO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stepfolio"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads the config file and fills defaults. A missing file is not an error.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.DataDir) == "" {
		d, err := DefaultDir()
		if err != nil {
			return err
		}
		c.DataDir = d
	}
	b, err := ParseBackend(c.Backend)
	if err != nil {
		return err
	}
	c.Backend = string(b)
	if strings.TrimSpace(c.StorageKey) == "" {
		c.StorageKey = DefaultStorageKey
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "info"
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Theme)) {
	case "", "auto":
		c.TUI.Theme = "auto"
	case "light", "dark":
		c.TUI.Theme = strings.ToLower(strings.TrimSpace(c.TUI.Theme))
	default:
		return fmt.Errorf("config: unknown tui.theme %q (expected auto|light|dark)", c.TUI.Theme)
	}
	return nil
}

// SaveConfig writes cfg to the config file.
func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, configFileName+".*.tmp", path, b, 0o600)
}
