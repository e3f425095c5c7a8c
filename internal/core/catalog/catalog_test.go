package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndGet(t *testing.T) {
	cat := New(t.TempDir())

	require.NoError(t, cat.Record("alpha", []byte("binary contents")))

	data, ok, err := cat.Get("alpha")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("binary contents"), data)
}

func TestRecord_Overwrites(t *testing.T) {
	cat := New(t.TempDir())

	require.NoError(t, cat.Record("alpha", []byte("old")))
	require.NoError(t, cat.Record("alpha", []byte("new")))

	data, ok, err := cat.Get("alpha")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), data)
}

func TestGet_MissingDatabase(t *testing.T) {
	cat := New(t.TempDir())

	_, ok, err := cat.Get("alpha")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_MissingEntry(t *testing.T) {
	cat := New(t.TempDir())
	require.NoError(t, cat.Record("alpha", []byte("x")))

	_, ok, err := cat.Get("beta")
	require.NoError(t, err)
	assert.False(t, ok)
}
