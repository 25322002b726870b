package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"gopkg.in/ini.v1"
)

// ErrMissingKey is returned when a required config key is absent or empty.
var ErrMissingKey = errors.New("missing required config key")

// ErrInvalidKey is returned when a config key holds a value outside its domain.
var ErrInvalidKey = errors.New("invalid config value")

const (
	defaultLibraryType = "user"
	defaultLimit       = 50

	// The source API caps a single fetch at 100 items.
	maxLimit = 100
)

// Config carries everything the sync needs. It is passed explicitly into each
// component; there is no package-level state.
type Config struct {
	Zotero Zotero `ini:"Zotero"`
	Notion Notion `ini:"Notion"`
	Sync   Sync   `ini:"Sync"`
}

type Zotero struct {
	APIKey      string `ini:"API_KEY" env:"ZOTERO_API_KEY"`
	LibraryID   int    `ini:"LIBRARY_ID" env:"ZOTERO_LIBRARY_ID"`
	LibraryType string `ini:"LIBRARY_TYPE" env:"ZOTERO_LIBRARY_TYPE"`
}

type Notion struct {
	Token      string `ini:"TOKEN" env:"NOTION_TOKEN"`
	DatabaseID string `ini:"DATABASE_ID" env:"NOTION_DATABASE_ID"`
}

type Sync struct {
	Limit int `ini:"LIMIT" env:"SYNC_LIMIT"`
}

// Load reads the INI settings file at path, applies environment overrides, and
// validates the result. A missing file is tolerated so the tool can run on
// environment variables alone; any other read error is fatal.
func Load(path string) (Config, error) {
	cfg := Config{
		Zotero: Zotero{LibraryType: defaultLibraryType},
		Sync:   Sync{Limit: defaultLimit},
	}

	file, err := ini.Load(path)
	if err == nil {
		if err := file.MapTo(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Zotero.APIKey == "" {
		return fmt.Errorf("%w: Zotero.API_KEY", ErrMissingKey)
	}
	if c.Zotero.LibraryID <= 0 {
		return fmt.Errorf("%w: Zotero.LIBRARY_ID", ErrMissingKey)
	}
	if c.Zotero.LibraryType != "user" && c.Zotero.LibraryType != "group" {
		return fmt.Errorf("%w: Zotero.LIBRARY_TYPE must be user or group, got %q", ErrInvalidKey, c.Zotero.LibraryType)
	}
	if c.Notion.Token == "" {
		return fmt.Errorf("%w: Notion.TOKEN", ErrMissingKey)
	}
	if c.Notion.DatabaseID == "" {
		return fmt.Errorf("%w: Notion.DATABASE_ID", ErrMissingKey)
	}
	if c.Sync.Limit < 1 || c.Sync.Limit > maxLimit {
		return fmt.Errorf("%w: Sync.LIMIT must be between 1 and %d, got %d", ErrInvalidKey, maxLimit, c.Sync.Limit)
	}
	return nil
}
