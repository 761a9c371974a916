package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"handyman-chat-be/pkg/store"
)

const keyPrefix = "chat:session:"

// SessionRepository backs the session store with Redis so session state can
// survive a process restart or be shared by a warm standby. The TTL is
// recomputed from CreatedAt on every save, keeping expiry relative to
// creation rather than to the last write.
type SessionRepository struct {
	client *redis.Client
	maxAge time.Duration
}

func NewSessionRepository(client *redis.Client, maxAge time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		maxAge: maxAge,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	ttl := r.maxAge - time.Since(session.CreatedAt)
	if ttl <= 0 {
		// Already past the retention window; saving would resurrect it.
		return r.Delete(ctx, session.ID)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}

	if err := r.client.Set(ctx, keyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	payload, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, store.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	var session store.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
