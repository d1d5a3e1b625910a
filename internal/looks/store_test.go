package looks

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "looks.json"))
	require.NoError(t, err)
	return store
}

func TestStoreRequiresPath(t *testing.T) {
	_, err := NewStore("")
	require.Error(t, err)
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save("  Dinner in Lisbon ", "linen, keep it light", []string{"7", "12"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Dinner in Lisbon", saved.Name)
	assert.Equal(t, []string{"7", "12"}, saved.ItemIDs)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "linen, keep it light", got.Notes)
}

func TestSaveValidation(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("", "", []string{"7"})
	require.Error(t, err)

	_, err = store.Save("Evening", "", nil)
	require.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save("first", "", []string{"1"})
	require.NoError(t, err)
	second, err := store.Save("second", "", []string{"2"})
	require.NoError(t, err)

	// Force distinct timestamps regardless of clock resolution.
	require.NoError(t, bumpCreatedAt(store, second.ID, time.Second))

	all, err := store.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save("Evening", "", []string{"7"})
	require.NoError(t, err)

	require.NoError(t, store.Remove(saved.ID))

	_, err = store.Get(saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Remove(saved.ID), ErrNotFound)
}

func TestSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "looks.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	saved, err := store.Save("Evening", "", []string{"7"})
	require.NoError(t, err)

	reopened, err := NewStore(path)
	require.NoError(t, err)
	got, err := reopened.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening", got.Name)
}

func TestCorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "looks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = store.List()
	require.Error(t, err)
}

// bumpCreatedAt rewrites one look's timestamp so ordering tests do not
// depend on sub-second clock behavior.
func bumpCreatedAt(s *Store, id string, delta time.Duration) error {
	all, err := s.load()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].CreatedAt = all[i].CreatedAt.Add(delta)
		}
	}
	return s.write(all)
}
