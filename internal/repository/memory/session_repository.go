package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"handyman-chat-be/pkg/store"
)

// SessionRepository keeps sessions in process memory. Expiry runs relative
// to creation: a session is Set exactly once and mutated through its pointer
// afterwards, so the cache TTL never resets. The cache janitor sweeps
// expired entries on the configured interval, and lookups of an expired
// entry miss even before the sweep runs.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(maxAge, sweepInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(maxAge, sweepInterval),
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	// Re-setting an existing id would restart its TTL and break the
	// creation-relative retention window.
	if _, found := r.cache.Get(session.ID); found {
		return nil
	}
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), nil
	}
	return nil, store.ErrSessionNotFound
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
