// Package config loads editor settings from a JSON file, with VIX_*
// environment variables (optionally from a .env file) taking precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/vim/govim"
)

type EditorConfig struct {
	TabStop    int  `json:"tabstop"`
	ShiftWidth int  `json:"shiftwidth"`
	IgnoreCase bool `json:"ignorecase"`
	WrapScan   bool `json:"wrapscan"`
	UndoLevels int  `json:"undolevels"`
}

// Options returns the editor options the config describes
func (c EditorConfig) Options() govim.Options {
	return govim.Options{
		TabStop:    c.TabStop,
		ShiftWidth: c.ShiftWidth,
		IgnoreCase: c.IgnoreCase,
		WrapScan:   c.WrapScan,
		UndoLevels: c.UndoLevels,
	}
}

// ViminfoConfig locates the history database. An empty path disables it.
type ViminfoConfig struct {
	Path         string `json:"path"`
	Driver       string `json:"driver"` // "go" or "cgo"
	HistoryLimit int    `json:"history_limit"`
}

type LogConfig struct {
	File  string `json:"file"`
	Level string `json:"level"`
}

type Config struct {
	Editor  EditorConfig  `json:"editor"`
	Viminfo ViminfoConfig `json:"viminfo"`
	Log     LogConfig     `json:"log"`
}

// Default returns the built-in configuration
func Default() *Config {
	opts := govim.DefaultOptions
	cfg := &Config{
		Editor: EditorConfig{
			TabStop:    opts.TabStop,
			ShiftWidth: opts.ShiftWidth,
			IgnoreCase: opts.IgnoreCase,
			WrapScan:   opts.WrapScan,
			UndoLevels: opts.UndoLevels,
		},
		Viminfo: ViminfoConfig{Driver: "go", HistoryLimit: 200},
		Log:     LogConfig{File: "vix.log", Level: "off"},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Viminfo.Path = filepath.Join(home, ".vix", "viminfo.db")
	}
	return cfg
}

// FromFile returns the defaults overlaid with the JSON file at path
func FromFile(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load reads path (a missing file means defaults), then applies the
// environment and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := FromFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debug("no config file, using defaults", "path", path)
		case err != nil:
			return nil, err
		default:
			cfg = fileCfg
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug("could not load .env file, continuing with system env vars")
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	e := &c.Editor
	if e.TabStop, err = getIntEnv("VIX_TABSTOP", e.TabStop); err != nil {
		return err
	}
	if e.ShiftWidth, err = getIntEnv("VIX_SHIFTWIDTH", e.ShiftWidth); err != nil {
		return err
	}
	if e.UndoLevels, err = getIntEnv("VIX_UNDOLEVELS", e.UndoLevels); err != nil {
		return err
	}
	if e.IgnoreCase, err = getBoolEnv("VIX_IGNORECASE", e.IgnoreCase); err != nil {
		return err
	}
	if e.WrapScan, err = getBoolEnv("VIX_WRAPSCAN", e.WrapScan); err != nil {
		return err
	}
	c.Viminfo.Path = getEnvWithDefault("VIX_VIMINFO", c.Viminfo.Path)
	c.Viminfo.Driver = getEnvWithDefault("VIX_SQLITE_DRIVER", c.Viminfo.Driver)
	c.Log.File = getEnvWithDefault("VIX_LOG_FILE", c.Log.File)
	c.Log.Level = getEnvWithDefault("VIX_LOG_LEVEL", c.Log.Level)
	return nil
}

// Validate rejects settings the editor cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Editor.TabStop < 1:
		return fmt.Errorf("tabstop must be positive, got %d", c.Editor.TabStop)
	case c.Editor.ShiftWidth < 1:
		return fmt.Errorf("shiftwidth must be positive, got %d", c.Editor.ShiftWidth)
	case c.Editor.UndoLevels < 0:
		return fmt.Errorf("undolevels must not be negative, got %d", c.Editor.UndoLevels)
	case c.Viminfo.Driver != "go" && c.Viminfo.Driver != "cgo":
		return fmt.Errorf("sqlite driver must be go or cgo, got %q", c.Viminfo.Driver)
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
