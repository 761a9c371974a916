package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyman-chat-be/pkg/store"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)
	ctx := context.Background()

	sess := store.NewSession("s1", "witaj")
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, store.NewSession("s1", "witaj")))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestExpiryIsRelativeToCreation(t *testing.T) {
	const maxAge = 80 * time.Millisecond
	repo := NewSessionRepository(maxAge, 10*time.Millisecond)
	ctx := context.Background()

	sess := store.NewSession("s1", "witaj")
	require.NoError(t, repo.Save(ctx, sess))

	// Still retrievable just under the retention window, even across
	// re-saves that must not extend the TTL.
	time.Sleep(40 * time.Millisecond)
	require.NoError(t, repo.Save(ctx, sess))
	_, err := repo.Get(ctx, "s1")
	require.NoError(t, err)

	// Gone just after the window.
	time.Sleep(60 * time.Millisecond)
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
