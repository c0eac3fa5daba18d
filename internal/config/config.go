// Package config loads and saves the user's settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDir   = "tetris-claude"
	fileName = "config.yaml"
)

// Config holds the persisted user settings.
type Config struct {
	Theme        string        `yaml:"theme"`
	Sound        bool          `yaml:"sound"`
	Music        bool          `yaml:"music"`
	MusicFile    string        `yaml:"music_file,omitempty"`
	Volume       int           `yaml:"volume"`
	Scale        int           `yaml:"scale"`
	Shadow       bool          `yaml:"shadow"`
	ExportDir    string        `yaml:"export_dir,omitempty"`
	RepeatWindow time.Duration `yaml:"repeat_window"`
	Debug        bool          `yaml:"debug"`

	path string
}

func Default() Config {
	return Config{
		Sound:        true,
		Volume:       70,
		Scale:        1,
		Shadow:       true,
		RepeatWindow: 500 * time.Millisecond,
	}
}

// DefaultPath is the settings file under the user config directory.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(root, appDir, fileName), nil
}

// Load reads the settings at path, or DefaultPath when path is empty. A
// missing file yields defaults and no error. A malformed file yields
// defaults and the parse error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	cfg.path = path
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fallback := Default()
		fallback.path = path
		return fallback, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the settings back to the file they were loaded from.
func (c Config) Save() error {
	path := c.path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c Config) Path() string {
	return c.path
}

func (c *Config) normalize() {
	c.Volume = ClampVolume(c.Volume)
	c.Scale = ClampScale(c.Scale)
	if c.RepeatWindow <= 0 {
		c.RepeatWindow = Default().RepeatWindow
	}
}

func ClampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > 3 {
		return 3
	}
	return value
}

func ClampVolume(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
