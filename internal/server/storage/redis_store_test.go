package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return NewRedisStore(client), mr
}

func TestRedisStore_SaveLoadDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	// Save
	require.NoError(t, store.Save(ctx, testSnapshot("ABC123")))

	// Load
	snap, err := store.Load(ctx, "ABC123")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "ABC123", snap.Code)
	assert.True(t, snap.GameStarted)
	assert.Equal(t, "tok1", snap.Players["p1"].ReconnectToken)

	// Delete
	require.NoError(t, store.Delete(ctx, "ABC123"))
	snap, err = store.Load(ctx, "ABC123")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRedisStore_LoadMissing(t *testing.T) {
	store, _ := newTestRedisStore(t)

	snap, err := store.Load(context.Background(), "NOPE42")
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRedisStore_CreatedAtPreserved(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot("ABC123")))
	createdAt := mr.HGet("room:ABC123", "created_at")
	require.NotEmpty(t, createdAt)

	// A later save keeps the original created_at but bumps updated_at
	time.Sleep(1100 * time.Millisecond)
	require.NoError(t, store.Save(ctx, testSnapshot("ABC123")))

	assert.Equal(t, createdAt, mr.HGet("room:ABC123", "created_at"))
	assert.NotEqual(t, createdAt, mr.HGet("room:ABC123", "updated_at"))
}

func TestRedisStore_GameStartedFlag(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	snap := testSnapshot("ABC123")
	snap.GameStarted = false
	require.NoError(t, store.Save(ctx, snap))
	assert.Equal(t, "0", mr.HGet("room:ABC123", "game_started"))

	snap.GameStarted = true
	require.NoError(t, store.Save(ctx, snap))
	assert.Equal(t, "1", mr.HGet("room:ABC123", "game_started"))
}

func TestRedisStore_Cleanup(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot("OLD001")))
	require.NoError(t, store.Save(ctx, testSnapshot("NEW001")))

	// Age the first room past the retention window
	old := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	mr.HSet("room:OLD001", "updated_at", old)

	removed, err := store.Cleanup(ctx, 20*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	snap, err := store.Load(ctx, "OLD001")
	require.NoError(t, err)
	assert.Nil(t, snap)
	snap, err = store.Load(ctx, "NEW001")
	require.NoError(t, err)
	assert.NotNil(t, snap)
}
