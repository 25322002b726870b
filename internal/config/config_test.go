package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

const validConfig = `[Zotero]
API_KEY = zot-secret
LIBRARY_ID = 12345
LIBRARY_TYPE = user

[Notion]
TOKEN = ntn-secret
DATABASE_ID = db-1

[Sync]
LIMIT = 20
`

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validConfig))
		require.NoError(t, err)
		assert.Equal(t, "zot-secret", cfg.Zotero.APIKey)
		assert.Equal(t, 12345, cfg.Zotero.LibraryID)
		assert.Equal(t, "user", cfg.Zotero.LibraryType)
		assert.Equal(t, "ntn-secret", cfg.Notion.Token)
		assert.Equal(t, "db-1", cfg.Notion.DatabaseID)
		assert.Equal(t, 20, cfg.Sync.Limit)
	})

	t.Run("defaults applied", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `[Zotero]
API_KEY = k
LIBRARY_ID = 7

[Notion]
TOKEN = tk
DATABASE_ID = db
`))
		require.NoError(t, err)
		assert.Equal(t, "user", cfg.Zotero.LibraryType)
		assert.Equal(t, 50, cfg.Sync.Limit)
	})

	t.Run("missing notion database id", func(t *testing.T) {
		_, err := Load(writeConfig(t, `[Zotero]
API_KEY = k
LIBRARY_ID = 7

[Notion]
TOKEN = tk
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingKey)
		assert.Contains(t, err.Error(), "Notion.DATABASE_ID")
	})

	t.Run("missing zotero api key", func(t *testing.T) {
		_, err := Load(writeConfig(t, `[Zotero]
LIBRARY_ID = 7

[Notion]
TOKEN = tk
DATABASE_ID = db
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingKey)
		assert.Contains(t, err.Error(), "Zotero.API_KEY")
	})

	t.Run("invalid library type", func(t *testing.T) {
		_, err := Load(writeConfig(t, `[Zotero]
API_KEY = k
LIBRARY_ID = 7
LIBRARY_TYPE = shelf

[Notion]
TOKEN = tk
DATABASE_ID = db
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidKey)
		assert.Contains(t, err.Error(), "Zotero.LIBRARY_TYPE")
	})

	t.Run("limit out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, `[Zotero]
API_KEY = k
LIBRARY_ID = 7

[Notion]
TOKEN = tk
DATABASE_ID = db

[Sync]
LIMIT = 500
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("NOTION_TOKEN", "from-env")
		t.Setenv("SYNC_LIMIT", "5")
		cfg, err := Load(writeConfig(t, validConfig))
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Notion.Token)
		assert.Equal(t, 5, cfg.Sync.Limit)
	})

	t.Run("missing file with env only", func(t *testing.T) {
		t.Setenv("ZOTERO_API_KEY", "k")
		t.Setenv("ZOTERO_LIBRARY_ID", "9")
		t.Setenv("NOTION_TOKEN", "tk")
		t.Setenv("NOTION_DATABASE_ID", "db")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
		require.NoError(t, err)
		assert.Equal(t, 9, cfg.Zotero.LibraryID)
	})

	t.Run("missing file without env", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}
