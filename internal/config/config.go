// Package config loads and stores the local configuration record.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// SchemaVersion is the only record layout this build understands.
const SchemaVersion = 1

// Environment variables that override file values.
const (
	EnvAPIKey = "LNR_API_KEY"
	EnvEditor = "LNR_EDITOR"
)

// Error definitions for config package.
var (
	ErrNotFound = errors.New("no configuration found")
	ErrInvalid  = errors.New("invalid configuration")
)

// Config is the local record written by auth login.
type Config struct {
	SchemaVersion int     `json:"schemaVersion"`
	APIKey        string  `json:"apiKey"`
	Editor        *string `json:"editor"`
}

// DefaultDir returns ~/.config/lnr.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lnr"), nil
}

// DefaultPath returns the config file inside DefaultDir.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the record at path. LNR_API_KEY and LNR_EDITOR take precedence
// over the file; with LNR_API_KEY set the file may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	_ = v.BindEnv("apiKey", EnvAPIKey)
	_ = v.BindEnv("editor", EnvEditor)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalid, path, err)
		}
		if _, ok := os.LookupEnv(EnvAPIKey); !ok {
			return nil, ErrNotFound
		}
		v.SetDefault("schemaVersion", SchemaVersion)
	}

	cfg := &Config{
		SchemaVersion: v.GetInt("schemaVersion"),
		APIKey:        strings.TrimSpace(v.GetString("apiKey")),
	}
	if raw := v.Get("editor"); raw != nil {
		e := v.GetString("editor")
		cfg.Editor = &e
	}
	cfg.Editor = ResolveEditor(cfg.Editor)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the record against the supported layout.
func (c *Config) Validate() error {
	if c.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: unsupported schemaVersion %d", ErrInvalid, c.SchemaVersion)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: apiKey is empty", ErrInvalid)
	}
	return nil
}

// EditorCommand returns the configured editor, or "" when none is set.
func (c *Config) EditorCommand() string {
	if c.Editor == nil {
		return ""
	}
	return *c.Editor
}

// ResolveEditor expands the literal "$EDITOR" from the environment. Blank
// values become nil.
func ResolveEditor(editor *string) *string {
	if editor == nil {
		return nil
	}
	e := strings.TrimSpace(*editor)
	if e == "$EDITOR" {
		e = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if e == "" {
		return nil
	}
	return &e
}

// Save writes cfg to path as indented JSON readable only by the owner.
func Save(path string, cfg *Config) error {
	out := *cfg
	out.SchemaVersion = SchemaVersion
	if err := out.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MaskKey hides all but the last four characters of an api key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
