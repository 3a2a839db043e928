// Package config persists the observer's location between runs as a small
// JSON dotfile in the user's home directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the dotfile name under the user's home directory.
const FileName = ".astrotimes.json"

// Config is the persisted observer record. City is optional and purely
// cosmetic; lat/lon/tz are what the computations need.
type Config struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	ElevM float64 `json:"elev"`
	TZ    string  `json:"tz"`
	City  string  `json:"city,omitempty"`
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the config from the default path. A missing file is not an
// error; it returns (nil, nil) so callers can fall back to flags.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TZ == "" {
		return nil, fmt.Errorf("config %s: missing tz", path)
	}
	return &cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path, readable only by the owner.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
