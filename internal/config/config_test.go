package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file", cfg.Storage.Engine)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.False(t, cfg.Watcher.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Watcher.Interval)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_ENGINE", "redis")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WATCHER_ENABLED", "true")
	t.Setenv("WATCHER_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Engine)
	assert.Equal(t, "redis.internal:6380", cfg.Storage.RedisAddress)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.True(t, cfg.Watcher.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Watcher.Interval)
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	t.Setenv("STORAGE_ENGINE", "dynamo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_ENGINE")
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_ENGINE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
