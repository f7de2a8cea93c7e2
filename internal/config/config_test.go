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
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.SuccessDelay)
	assert.Equal(t, 3*time.Second, cfg.FeedbackDelay)
	assert.Equal(t, 10*time.Minute, cfg.SessionIdleTimeout)
	assert.Zero(t, cfg.Seed)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FRACMATCH_ADDR", ":9999")
	t.Setenv("FRACMATCH_SUCCESS_DELAY", "150ms")
	t.Setenv("FRACMATCH_SEED", "42")
	t.Setenv("FRACMATCH_ALLOWED_ORIGINS", "localhost:*,example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 150*time.Millisecond, cfg.SuccessDelay)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, []string{"localhost:*", "example.com"}, cfg.AllowedOrigins)
}

func TestLoadDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FRACMATCH_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FRACMATCH_LOG_LEVEL") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("FRACMATCH_SUCCESS_DELAY", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")

	t.Setenv("FRACMATCH_SUCCESS_DELAY", "-1s")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
