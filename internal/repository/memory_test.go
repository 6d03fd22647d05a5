package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores copies", func(t *testing.T) {
		// Given: a stored session
		repo := NewMemorySessionRepository(time.Hour)
		session := newPlayedSession("123")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: the caller mutates its own value afterwards
		session.History[1] = entity.ParseBoard("OOO......")
		session.CurrentMove = 0

		// Then: the stored session is unaffected
		retrieved, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, newPlayedSession("123"), retrieved)
	})

	t.Run("Not found", func(t *testing.T) {
		// Given: an empty repository
		repo := NewMemorySessionRepository(time.Hour)

		// When: reading and deleting an unknown id
		_, getErr := repo.GetByID(ctx, "nope")
		delErr := repo.DeleteByID(ctx, "nope")

		// Then: both report ErrSessionNotFound
		require.ErrorIs(t, getErr, apperror.ErrSessionNotFound)
		require.ErrorIs(t, delErr, apperror.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Given: a stored session
		repo := NewMemorySessionRepository(time.Hour)
		require.NoError(t, repo.CreateOrUpdate(ctx, newPlayedSession("123")))

		// When: deleting it
		require.NoError(t, repo.DeleteByID(ctx, "123"))

		// Then: it can no longer be read
		_, err := repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Expiry and purge", func(t *testing.T) {
		// Given: a repository with a controllable clock
		repo := NewMemorySessionRepository(time.Minute).(*memSession)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return now }

		require.NoError(t, repo.CreateOrUpdate(ctx, newPlayedSession("old")))
		now = now.Add(2 * time.Minute)
		require.NoError(t, repo.CreateOrUpdate(ctx, newPlayedSession("fresh")))

		// When: reading the old session
		_, err := repo.GetByID(ctx, "old")

		// Then: it has expired, and purge removes only it
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Equal(t, 1, repo.PurgeExpired())

		_, err = repo.GetByID(ctx, "fresh")
		require.NoError(t, err)
	})

	t.Run("Concurrent access", func(t *testing.T) {
		// Given: a shared repository
		repo := NewMemorySessionRepository(0)

		// When: many goroutines save and read sessions
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				session := entity.NewSession(id)
				assert.NoError(t, repo.CreateOrUpdate(ctx, session))
				_, err := repo.GetByID(ctx, id)
				assert.NoError(t, err)
			}(string(rune('a' + i)))
		}
		wg.Wait()

		// Then: every session is present
		for i := 0; i < 32; i++ {
			_, err := repo.GetByID(ctx, string(rune('a'+i)))
			require.NoError(t, err)
		}
	})
}
