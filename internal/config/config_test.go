package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "fa", c.DefaultLocale)
	assert.Equal(t, 300*time.Millisecond, c.DebounceWindow())
	assert.Equal(t, 30*time.Minute, c.SessionTTL())
	assert.False(t, c.IsProd())
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("env: prod\naddr: \":9000\"\nlisting:\n  base_url: https://api.example.ir/api/products/\nbrowse:\n  debounce_ms: 150\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.IsProd())
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "https://api.example.ir/api/products/", c.Listing.BaseURL)
	assert.Equal(t, 150*time.Millisecond, c.DebounceWindow())
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Addr)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\n"), 0o644))

	t.Setenv("STORE_WEB_PORT", "7777")
	t.Setenv("STORE_WEB_LISTING_BASE_URL", "https://backend.internal/api/products/")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", c.Addr)
	assert.Equal(t, "https://backend.internal/api/products/", c.Listing.BaseURL)
}

func TestBadDebounceIgnored(t *testing.T) {
	t.Setenv("STORE_WEB_DEBOUNCE_MS", "not-a-number")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, c.DebounceWindow())
}
