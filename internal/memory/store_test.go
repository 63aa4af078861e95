//go:build !js

package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "mem")
	s := NewFileStore(dir)

	_, err := s.Get("slot")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("slot", []byte(`[1]`)))
	require.NoError(t, s.Set("slot", []byte(`[2]`)))
	got, err := s.Get("slot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[2]`), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "slot.json", entries[0].Name())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brigid.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)

	_, err = s.Get("probe")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("probe", []byte(`["a"]`)))
	require.NoError(t, s.Set("probe", []byte(`["b"]`)))
	require.NoError(t, s.Close())

	// Reopen to make sure the value was persisted
	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get("probe")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["b"]`), got)

	m := New(s, nil)
	m.Save(snap("x"))
	assert.Equal(t, []string{"x"}, ids(m.Load()))
}
