package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "students", []byte(`[{"id":"1"}]`)))

	value, err := store.Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), value)
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "tasks", []byte(`[{"id":"t1"}]`)))

	value, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"t1"}]`), value)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, "session"))

	_, err = store.Get(ctx, "session")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "session"))
}

func TestFileStorePerStudentKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "seen_tasks:1", []byte(`["t1"]`)))
	require.NoError(t, store.Set(ctx, "seen_tasks:2", []byte(`["t2"]`)))

	one, err := store.Get(ctx, "seen_tasks:1")
	require.NoError(t, err)
	two, err := store.Get(ctx, "seen_tasks:2")
	require.NoError(t, err)
	assert.NotEqual(t, one, two)
}
