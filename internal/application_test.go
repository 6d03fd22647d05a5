package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/config"
)

func newTestConfig(storage string) *config.Config {
	return &config.Config{
		Storage: storage,
		Session: config.Session{Cookie: "ttt_session", TTL: time.Hour},
	}
}

func TestNewSessionRepository(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Memory storage can purge", func(t *testing.T) {
		// When: building the memory repository
		repo, closeFn, err := newSessionRepository(ctx, log, newTestConfig(config.StorageMemory))
		require.NoError(t, err)
		defer closeFn()

		// Then: it is picked up by the purge loop
		_, ok := repo.(expiringRepo)
		assert.True(t, ok)
	})

	t.Run("Redis storage", func(t *testing.T) {
		// Given: a running redis
		mini := miniredis.RunT(t)
		conf := newTestConfig(config.StorageRedis)
		conf.Redis = config.Redis{Host: mini.Host(), Port: mini.Port()}

		// When: building the redis repository
		repo, closeFn, err := newSessionRepository(ctx, log, conf)
		require.NoError(t, err)
		defer closeFn()

		// Then: it answers and is not purged by the loop
		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)

		_, ok := repo.(expiringRepo)
		assert.False(t, ok)
	})

	t.Run("Redis without host", func(t *testing.T) {
		conf := newTestConfig(config.StorageRedis)

		_, _, err := newSessionRepository(ctx, log, conf)

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, _, err := newSessionRepository(ctx, log, newTestConfig("sqlite"))

		assert.ErrorIs(t, err, ErrUnknownStorage)
	})
}
