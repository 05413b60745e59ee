package historystore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	ts := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put(ctx, "img-1", ts))

	// A fresh store reads what the first one flushed.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, ok, err := reopened.Get(ctx, "img-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Equal(ts))
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "absent", "history.json"))
	require.NoError(t, err)
	all, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFileStoreTimestampsMonotonic(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)

	ctx := context.Background()
	newer := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-2 * time.Hour)

	require.NoError(t, store.Put(ctx, "img-1", newer))
	require.NoError(t, store.Put(ctx, "img-1", older))

	got, ok, err := store.Get(ctx, "img-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Equal(newer))
}

func TestMemoryStoreLoadAllIsACopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "img-1", time.Now()))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	delete(all, "img-1")

	_, ok, err := store.Get(ctx, "img-1")
	require.NoError(t, err)
	require.True(t, ok)
}
