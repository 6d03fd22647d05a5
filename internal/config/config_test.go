package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads yaml and fills defaults", func(t *testing.T) {
		// Given: a config file with a subset of the keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nstorage: redis\nredis:\n  host: cache\nsession:\n  ttl: 30m\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf := MustLoad(path)

		// Then: file values win and the rest falls back to defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Session.TTL)
		assert.Equal(t, "ttt_session", conf.Session.Cookie)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.False(t, conf.Telemetry.Enabled)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		// Given: a path that does not exist
		path := filepath.Join(t.TempDir(), "missing.yml")

		// Then: loading panics
		assert.Panics(t, func() { MustLoad(path) })
	})
}

func TestLoadFromEnv(t *testing.T) {
	// Given: environment overrides
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("STORAGE", StorageMemory)
	t.Setenv("SESSION_COOKIE", "sid")

	// When: loading from the environment
	conf, err := LoadFromEnv()

	// Then: overrides are applied on top of defaults
	require.NoError(t, err)
	assert.Equal(t, "8081", conf.HTTPPort)
	assert.Equal(t, StorageMemory, conf.Storage)
	assert.Equal(t, "sid", conf.Session.Cookie)
	assert.Equal(t, 24*time.Hour, conf.Session.TTL)
	assert.Equal(t, "info", conf.LogLevel)
}
