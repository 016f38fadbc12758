package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySessionStore_MarkShown(t *testing.T) {
	store := NewInMemorySessionStore(30 * time.Minute)
	defer store.Close()

	ctx := context.Background()

	t.Run("marked promotions appear in the shown set", func(t *testing.T) {
		promoA := uuid.New()
		promoB := uuid.New()

		require.NoError(t, store.MarkShown(ctx, "sess-1", promoA))
		require.NoError(t, store.MarkShown(ctx, "sess-1", promoB))

		shown, err := store.Shown(ctx, "sess-1")
		require.NoError(t, err)
		assert.Len(t, shown, 2)
		assert.Contains(t, shown, promoA)
		assert.Contains(t, shown, promoB)
	})

	t.Run("marking twice keeps a single entry", func(t *testing.T) {
		promo := uuid.New()

		require.NoError(t, store.MarkShown(ctx, "sess-2", promo))
		require.NoError(t, store.MarkShown(ctx, "sess-2", promo))

		shown, err := store.Shown(ctx, "sess-2")
		require.NoError(t, err)
		assert.Len(t, shown, 1)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		require.NoError(t, store.MarkShown(ctx, "sess-3", uuid.New()))

		shown, err := store.Shown(ctx, "sess-4")
		require.NoError(t, err)
		assert.Empty(t, shown)
	})
}

func TestInMemorySessionStore_Shown(t *testing.T) {
	store := NewInMemorySessionStore(30 * time.Minute)
	defer store.Close()

	ctx := context.Background()

	t.Run("returns empty set for unknown session", func(t *testing.T) {
		shown, err := store.Shown(ctx, "never-seen")
		require.NoError(t, err)
		assert.NotNil(t, shown)
		assert.Empty(t, shown)
	})

	t.Run("returns a copy the caller can mutate", func(t *testing.T) {
		promo := uuid.New()
		require.NoError(t, store.MarkShown(ctx, "sess-copy", promo))

		shown, err := store.Shown(ctx, "sess-copy")
		require.NoError(t, err)
		delete(shown, promo)

		again, err := store.Shown(ctx, "sess-copy")
		require.NoError(t, err)
		assert.Contains(t, again, promo)
	})
}

func TestInMemorySessionStore_Reset(t *testing.T) {
	store := NewInMemorySessionStore(30 * time.Minute)
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.MarkShown(ctx, "sess-reset", uuid.New()))
	require.NoError(t, store.Reset(ctx, "sess-reset"))

	shown, err := store.Shown(ctx, "sess-reset")
	require.NoError(t, err)
	assert.Empty(t, shown)
}

func TestInMemorySessionStore_Expiration(t *testing.T) {
	store := NewInMemorySessionStore(10 * time.Millisecond)
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.MarkShown(ctx, "sess-exp", uuid.New()))

	// Wait for the session to lapse
	time.Sleep(20 * time.Millisecond)

	shown, err := store.Shown(ctx, "sess-exp")
	require.NoError(t, err)
	assert.Empty(t, shown, "expired session should read as empty")
}

func TestInMemorySessionStore_Cleanup(t *testing.T) {
	store := NewInMemorySessionStore(10 * time.Millisecond)
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.MarkShown(ctx, "sess-a", uuid.New()))
	require.NoError(t, store.MarkShown(ctx, "sess-b", uuid.New()))
	assert.Equal(t, 2, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 0, store.Size())
}

func TestInMemorySessionStore_Close(t *testing.T) {
	store := NewInMemorySessionStore(30 * time.Minute)

	require.NoError(t, store.Close())
	// Safe to call multiple times
	require.NoError(t, store.Close())
}
