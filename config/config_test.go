package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, 16, cfg.AnnounceQueueSize)
	assert.Equal(t, 30*time.Minute, cfg.DialogIdleTimeout)
}

func TestFilePaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/var/lib/anikatbot"

	assert.Equal(t, filepath.Join("/var/lib/anikatbot", "data.json"), cfg.CatalogFile())
	assert.Equal(t, filepath.Join("/var/lib/anikatbot", "users.json"), cfg.UsersFile())
}

func TestIsAdmin(t *testing.T) {
	cfg := Config{AdminIDs: []int64{1, 7}}

	assert.True(t, cfg.IsAdmin(1))
	assert.True(t, cfg.IsAdmin(7))
	assert.False(t, cfg.IsAdmin(2))
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"bot_token: test-token\n"+
			"channel_id: -100200300\n"+
			"admin_ids: [1, 7]\n"+
			"page_size: 10\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, int64(-100200300), cfg.ChannelID)
	assert.Equal(t, []int64{1, 7}, cfg.AdminIDs)
	assert.Equal(t, 10, cfg.PageSize)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30*time.Minute, cfg.DialogIdleTimeout)
}

func TestLoad_MissingToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 3\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot_token")
}
