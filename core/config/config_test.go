package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 300, cfg.Server.SyncTimeoutSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Synced bookmarks", cfg.Sync.RootTitle)
	assert.Equal(t, 4, cfg.Sync.Concurrency)
	assert.True(t, cfg.Sync.IncludeUnsorted)
	assert.Equal(t, "file", cfg.State.Backend)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SYNC_ROOT_TITLE", "Mirror")
	t.Setenv("SYNC_INCLUDE_UNSORTED", "false")
	t.Setenv("STATE_BACKEND", "database")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Mirror", cfg.Sync.RootTitle)
	assert.False(t, cfg.Sync.IncludeUnsorted)
	assert.Equal(t, "database", cfg.State.Backend)

	opts := cfg.Sync.Options()
	assert.Equal(t, 4, opts.Concurrency)
	assert.False(t, opts.IncludeUnsorted)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	// Register cleanup for the variable godotenv sets.
	t.Setenv("SYNC_CONCURRENCY", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_CONCURRENCY=9\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Sync.Concurrency)
}
