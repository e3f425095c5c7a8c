package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFile(t *testing.T) {
	storeRoot := t.TempDir()

	st, err := Load(storeRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
}

func TestLoad_Corrupt(t *testing.T) {
	storeRoot := t.TempDir()
	require.NoError(t, os.WriteFile(Path(storeRoot), []byte("not [valid toml ="), 0o644))

	_, err := Load(storeRoot)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	storeRoot := t.TempDir()

	st := New()
	st.Insert("alpha", Record{
		Repo:     "main",
		Version:  "1.0",
		Binaries: []string{"/store/bins/alpha", "/store/bins/alphactl"},
	})
	require.NoError(t, Save(storeRoot, st))

	loaded, err := Load(storeRoot)
	require.NoError(t, err)
	rec, ok := loaded.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "main", rec.Repo)
	assert.Equal(t, "1.0", rec.Version)
	assert.Equal(t, []string{"/store/bins/alpha", "/store/bins/alphactl"}, rec.Binaries)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	storeRoot := t.TempDir()

	st := New()
	st.Insert("alpha", Record{Repo: "main", Version: "1.0"})
	require.NoError(t, Save(storeRoot, st))

	entries, err := os.ReadDir(storeRoot)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestStore_Accessors(t *testing.T) {
	st := New()
	assert.False(t, st.Contains("alpha"))

	st.Insert("alpha", Record{Repo: "main", Version: "1.0"})
	assert.True(t, st.Contains("alpha"))
	assert.Equal(t, 1, st.Len())

	// Insert overwrites, never duplicates.
	st.Insert("alpha", Record{Repo: "main", Version: "2.0"})
	assert.Equal(t, 1, st.Len())
	rec, ok := st.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "2.0", rec.Version)

	removed, ok := st.Remove("alpha")
	require.True(t, ok)
	assert.Equal(t, "2.0", removed.Version)
	assert.False(t, st.Contains("alpha"))

	_, ok = st.Remove("alpha")
	assert.False(t, ok)
}

func TestMutate_PersistsChanges(t *testing.T) {
	storeRoot := t.TempDir()

	err := Mutate(storeRoot, func(st *Store) error {
		st.Insert("beta", Record{Repo: "main", Version: "0.3"})
		return nil
	})
	require.NoError(t, err)

	st, err := Snapshot(storeRoot)
	require.NoError(t, err)
	assert.True(t, st.Contains("beta"))

	// The lock file stays behind; the document itself is intact.
	_, err = os.Stat(filepath.Join(storeRoot, LockName))
	assert.NoError(t, err)
}

func TestMutate_ErrorSkipsSave(t *testing.T) {
	storeRoot := t.TempDir()
	boom := errors.New("boom")

	err := Mutate(storeRoot, func(st *Store) error {
		st.Insert("beta", Record{Repo: "main", Version: "0.3"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	st, err := Snapshot(storeRoot)
	require.NoError(t, err)
	assert.False(t, st.Contains("beta"))
}

func TestMutate_CorruptStateIsHardError(t *testing.T) {
	storeRoot := t.TempDir()
	require.NoError(t, os.WriteFile(Path(storeRoot), []byte("{{{{"), 0o644))

	err := Mutate(storeRoot, func(st *Store) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSnapshot_FreshStore(t *testing.T) {
	storeRoot := filepath.Join(t.TempDir(), "store")

	st, err := Snapshot(storeRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
}
