package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Get("names")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("names", []byte(`["Alice","Bob"]`)))
	val, err := s.Get("names")
	require.NoError(t, err)
	assert.Equal(t, `["Alice","Bob"]`, string(val))

	require.NoError(t, s.Set("names", []byte(`[]`)))
	val, err = s.Get("names")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(val))
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	exerciseStore(t, s)

	buf := []byte("x")
	require.NoError(t, s.Set("k", buf))
	buf[0] = 'y'
	val, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "x", string(val))
}

func TestBadgerStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	s, err := NewBadgerStore(dir)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Set("settings", []byte(`{"ignore_language":true}`)))
	require.NoError(t, s.Close())

	reopened, err := NewBadgerStore(dir)
	require.NoError(t, err)
	defer reopened.Close()
	val, err := reopened.Get("settings")
	require.NoError(t, err)
	assert.Equal(t, `{"ignore_language":true}`, string(val))
}
