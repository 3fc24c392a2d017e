// Package config persists switchbox settings as JSON under the user's home
// directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/switchbox-dev/switchbox/internal/sync"
	"github.com/switchbox-dev/switchbox/internal/utils"
	"github.com/switchbox-dev/switchbox/internal/webdav"
)

const (
	defaultConfigPath   = "~/.switchbox/config.json"
	defaultAccountsPath = "~/.switchbox/accounts"
	defaultAuthPath     = "~/.codex/auth.json"
)

// Config is the on-disk application configuration. Zero values are usable;
// the file only exists once the user changes something.
type Config struct {
	AccountsDir string          `json:"accounts_dir,omitempty"`
	WebDAV      webdav.Endpoint `json:"webdav"`
	Sync        sync.Options    `json:"sync"`
}

func Default() *Config {
	return &Config{Sync: sync.DefaultOptions()}
}

func DefaultPath() (string, error) {
	return utils.ResolvePath(defaultConfigPath)
}

// ActiveAuthPath is the auth file the external CLI tool reads at startup.
func ActiveAuthPath() (string, error) {
	return utils.ResolvePath(defaultAuthPath)
}

// Load reads the config at path. A missing file yields the defaults; a file
// that exists but does not parse is an error, silently discarding a user's
// settings would be worse.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// ResolveAccountsDir returns the configured accounts directory, falling back
// to the default location when unset.
func (c *Config) ResolveAccountsDir() (string, error) {
	if c.AccountsDir != "" {
		return utils.ResolvePath(c.AccountsDir)
	}
	return utils.ResolvePath(defaultAccountsPath)
}
