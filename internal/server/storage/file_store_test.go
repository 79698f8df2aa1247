package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/eyalet-online/internal/game/room"
)

func testSnapshot(code string) *room.Snapshot {
	return &room.Snapshot{
		Code:        code,
		HostID:      "p1",
		MaxPlayers:  20,
		GameStarted: true,
		CurrentTurn: 3,
		Players: map[string]room.PlayerSnapshot{
			"p1": {ID: "p1", Name: "Host", Province: "Rum Eyaleti", ReconnectToken: "tok1"},
		},
		PlayerOrder: []string{"p1"},
		SavedAt:     time.Now().Format(time.RFC3339),
	}
}

func TestFileStore_SaveLoadDelete(t *testing.T) {
	t.Parallel()

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	// Save
	require.NoError(t, fs.Save(ctx, testSnapshot("ABC123")))

	// Load
	snap, err := fs.Load(ctx, "ABC123")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "ABC123", snap.Code)
	assert.Equal(t, 3, snap.CurrentTurn)
	assert.Equal(t, "tok1", snap.Players["p1"].ReconnectToken)

	// Codes are case-insensitive on disk
	snap, err = fs.Load(ctx, "abc123")
	require.NoError(t, err)
	assert.NotNil(t, snap)

	// Delete
	require.NoError(t, fs.Delete(ctx, "ABC123"))
	snap, err = fs.Load(ctx, "ABC123")
	require.NoError(t, err)
	assert.Nil(t, snap)

	// Deleting a missing snapshot is not an error
	assert.NoError(t, fs.Delete(ctx, "ABC123"))
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	snap, err := fs.Load(context.Background(), "NOPE42")
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	t.Parallel()

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first := testSnapshot("ABC123")
	first.CurrentTurn = 1
	require.NoError(t, fs.Save(ctx, first))

	second := testSnapshot("ABC123")
	second.CurrentTurn = 9
	require.NoError(t, fs.Save(ctx, second))

	snap, err := fs.Load(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 9, snap.CurrentTurn)

	// No temp files left behind
	entries, err := os.ReadDir(fs.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_Cleanup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, testSnapshot("OLD001")))
	require.NoError(t, fs.Save(ctx, testSnapshot("NEW001")))

	// Age the first snapshot past the retention window
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "OLD001.json"), old, old))

	removed, err := fs.Cleanup(ctx, 20*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	snap, err := fs.Load(ctx, "OLD001")
	require.NoError(t, err)
	assert.Nil(t, snap)
	snap, err = fs.Load(ctx, "NEW001")
	require.NoError(t, err)
	assert.NotNil(t, snap)
}
