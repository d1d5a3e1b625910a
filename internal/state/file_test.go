package state

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	require.NoError(t, err)
	return store
}

func sampleState() auth.State {
	return auth.State{
		User: &auth.User{
			ID:       "u-1",
			Email:    "ava@example.com",
			Username: "ava",
			Role:     auth.RoleClient,
			Status:   "active",
		},
		Tokens: &auth.TokenPair{Access: "A1", Refresh: "R1"},
		Role:   auth.RoleClient,
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleState()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), loaded)
	assert.True(t, loaded.IsAuthenticated())
}

func TestFileStore_MissingFileIsLoggedOut(t *testing.T) {
	store := newTestFileStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, auth.State{}, loaded)
	assert.False(t, loaded.IsAuthenticated())
}

func TestFileStore_CorruptFileDegradesToLoggedOut(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, auth.State{}, loaded)
}

func TestFileStore_ClearRemovesRecord(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleState()))
	require.NoError(t, store.Clear(ctx))

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing again is a no-op, not an error.
	require.NoError(t, store.Clear(ctx))
}

func TestFileStore_SaveCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "nested", "deeper", "session.json"), testLogger())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), sampleState()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
