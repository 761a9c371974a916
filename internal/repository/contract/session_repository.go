package contract

import (
	"context"

	"handyman-chat-be/pkg/store"
)

// ISessionRepository owns all session state. Implementations must expire
// sessions a fixed window after creation, independent of later writes.
type ISessionRepository interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
