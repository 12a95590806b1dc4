// Package config reads and writes the JSON settings file and resolves the
// data directory layout.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Names inside the data directory.
const (
	FileName       = "config.json"
	ThemesDirName  = "themes"
	HelpFileName   = "help.txt"
	EnvFileName    = ".env"
	DefaultTheme   = "default"
	defaultDataDir = "~/.tedit"
)

// Config is the settings file: { "theme": "<name>" }.
type Config struct {
	Theme string `json:"theme"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{Theme: DefaultTheme}
}

// Paths is the layout of the data directory.
type Paths struct {
	Dir    string
	Config string
	Themes string
	Help   string
	Env    string
}

// NewPaths lays out dir. An empty dir selects ~/.tedit.
func NewPaths(dir string) (Paths, error) {
	if dir == "" {
		dir = defaultDataDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return Paths{}, fmt.Errorf("error resolving data directory '%s': %w", dir, err)
	}
	return Paths{
		Dir:    expanded,
		Config: filepath.Join(expanded, FileName),
		Themes: filepath.Join(expanded, ThemesDirName),
		Help:   filepath.Join(expanded, HelpFileName),
		Env:    filepath.Join(expanded, EnvFileName),
	}, nil
}

// Load reads the settings at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("error reading config '%s': %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("error parsing config '%s': %w", path, err)
	}
	return cfg, nil
}

// SaveTheme sets the theme field of the file at path, leaving every other
// field as it was. The file is rewritten with a 4-space indent.
func SaveTheme(path, theme string) error {
	fields := map[string]json.RawMessage{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &fields); err != nil {
				return fmt.Errorf("error parsing config '%s': %w", path, err)
			}
			// A literal null decodes to a nil map.
			if fields == nil {
				fields = map[string]json.RawMessage{}
			}
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("error reading config '%s': %w", path, err)
	}

	value, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("error encoding theme: %w", err)
	}
	fields["theme"] = value

	out, err := json.MarshalIndent(fields, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("error writing config '%s': %w", path, err)
	}
	return nil
}
