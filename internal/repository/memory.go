package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type memorySession struct {
	session   entity.Session
	expiresAt time.Time
}

type memSession struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository keeps sessions in process memory. Stored values
// are deep copies, callers never share a history slice with the store.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	stored := memorySession{session: cloneSession(session)}
	if that.ttl > 0 {
		stored.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.sessions[session.ID] = stored
	that.mu.Unlock()

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	stored, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok || that.expired(stored) {
		return nil, apperror.ErrSessionNotFound
	}

	session := cloneSession(&stored.session)

	return &session, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.sessions[id]
	if !ok || that.expired(stored) {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// PurgeExpired drops expired sessions and returns how many were removed.
func (that *memSession) PurgeExpired() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, stored := range that.sessions {
		if that.expired(stored) {
			delete(that.sessions, id)
			removed++
		}
	}

	return removed
}

func (that *memSession) expired(stored memorySession) bool {
	return !stored.expiresAt.IsZero() && that.now().After(stored.expiresAt)
}

func cloneSession(session *entity.Session) entity.Session {
	clone := *session
	clone.History = append([]entity.Board(nil), session.History...)

	return clone
}
