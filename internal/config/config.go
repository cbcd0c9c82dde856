package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Config struct {
	Server     ServerConfig `mapstructure:"server"`
	File       FileConfig   `mapstructure:"file"`
	Sync       SyncConfig   `mapstructure:"sync"`
	Cache      CacheConfig  `mapstructure:"cache"`
	Payee      PayeeConfig  `mapstructure:"payee"`
	ConfigPath string       `mapstructure:"-"`
}

type ServerConfig struct {
	URL      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
}

// FileConfig carries the optional budget-file password. The local cache is
// stored decrypted, so the password only matters when a fresh download of
// the budget file is requested through the official client.
type FileConfig struct {
	Password string `mapstructure:"password"`
}

type SyncConfig struct {
	ID string `mapstructure:"id"`
}

type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

type PayeeConfig struct {
	Name string `mapstructure:"name"`
}

func NewDefault() *Config {
	return &Config{
		Cache: CacheConfig{Dir: "./cache"},
		Payee: PayeeConfig{Name: "Loan Interest"},
	}
}

// Validate reports every required setting that is missing. Server URL,
// server password and sync id are required; the file password is not.
func (c *Config) Validate() error {
	var missing []string
	if c.Server.URL == "" {
		missing = append(missing, "server.url (ACTUAL_SERVER_URL)")
	}
	if c.Server.Password == "" {
		missing = append(missing, "server.password (ACTUAL_SERVER_PASSWORD)")
	}
	if c.Sync.ID == "" {
		missing = append(missing, "sync.id (ACTUAL_SYNC_ID)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required settings for Actual not provided: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CachePath is the budget cache database for the configured sync id.
func (c *Config) CachePath() string {
	return filepath.Join(c.Cache.Dir, c.Sync.ID+".sqlite")
}
