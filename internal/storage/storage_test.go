package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(KeyUser, `{"username":"alice"}`))

	got, err := s.Get(KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"username":"alice"}`, got)
}

func TestPutReplaces(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(KeyUser, "first"))
	require.NoError(t, s.Put(KeyUser, "second"))

	got, err := s.Get(KeyUser)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(KeyUser, "x"))
	require.NoError(t, s.Delete(KeyUser))

	_, err := s.Get(KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine
	assert.NoError(t, s.Delete(KeyUser))
}

func TestClientIDStable(t *testing.T) {
	s := openTestStore(t)

	id1, err := s.ClientID()
	require.NoError(t, err)
	assert.NotEmpty(t, id1)

	id2, err := s.ClientID()
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Put(KeyUser, "alice"))
	require.NoError(t, s1.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(KeyUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}
