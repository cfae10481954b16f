package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbSetup struct {
	name   string
	create func(t *testing.T) Store
}

func newBoltStoreForTesting(t *testing.T) Store {
	s, err := NewBoltDBStore(BoltDBOptions{FilePath: filepath.Join(t.TempDir(), "test_bolt_db")})
	require.NoError(t, err)
	return s
}

func newLevelDBForTesting(t *testing.T) Store {
	s, err := NewLevelDBStore(LevelDBOptions{DataDirectoryPath: t.TempDir()})
	require.NoError(t, err)
	return s
}

var setups = []dbSetup{
	{"MemoryStore", func(t *testing.T) Store { return NewMemoryStore() }},
	{"MemCachedStore", func(t *testing.T) Store { return NewMemCachedStore(NewMemoryStore()) }},
	{"BoltDBStore", newBoltStoreForTesting},
	{"LevelDBStore", newLevelDBForTesting},
}

func testStorePutAndGet(t *testing.T, s Store) {
	key := []byte("foo")
	value := []byte("bar")

	require.NoError(t, s.Put(key, value))

	result, err := s.Get(key)
	assert.Nil(t, err)
	require.Equal(t, value, result)
}

func testStoreGetNonExistent(t *testing.T, s Store) {
	key := []byte("sparse")

	_, err := s.Get(key)
	assert.Equal(t, err, ErrKeyNotFound)
}

func testStoreDelete(t *testing.T, s Store) {
	key := []byte("foo")
	value := []byte("bar")

	require.NoError(t, s.Put(key, value))
	require.NoError(t, s.Delete(key))

	_, err := s.Get(key)
	assert.Equal(t, err, ErrKeyNotFound)
}

func testStoreSeek(t *testing.T, s Store) {
	for _, v := range []string{"10", "11", "20", "30", "31", "32"} {
		require.NoError(t, s.Put([]byte(v), []byte("val"+v)))
	}

	var seen []string
	s.Seek([]byte("3"), func(k, v []byte) bool {
		seen = append(seen, string(k))
		return true
	})
	assert.Equal(t, []string{"30", "31", "32"}, seen)

	// early exit
	seen = seen[:0]
	s.Seek([]byte("1"), func(k, v []byte) bool {
		seen = append(seen, string(k))
		return false
	})
	assert.Equal(t, []string{"10"}, seen)
}

func TestAllDBs(t *testing.T) {
	for _, setup := range setups {
		s := setup
		t.Run(s.name, func(t *testing.T) {
			for _, f := range []struct {
				name string
				test func(*testing.T, Store)
			}{
				{"PutAndGet", testStorePutAndGet},
				{"GetNonExistent", testStoreGetNonExistent},
				{"Delete", testStoreDelete},
				{"Seek", testStoreSeek},
			} {
				tf := f
				t.Run(tf.name, func(t *testing.T) {
					store := s.create(t)
					t.Cleanup(func() { store.Close() })
					tf.test(t, store)
				})
			}
		})
	}
}

func TestMemCachedPersist(t *testing.T) {
	ps := NewMemoryStore()
	ts := NewMemCachedStore(ps)

	require.NoError(t, ts.Put([]byte("key"), []byte("value")))
	require.NoError(t, ts.Put([]byte("key2"), []byte("value2")))

	// lower store is not touched before Persist
	_, err := ps.Get([]byte("key"))
	assert.Equal(t, ErrKeyNotFound, err)

	n, err := ts.Persist()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v, err := ps.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	// deletion is propagated on the next Persist
	require.NoError(t, ts.Delete([]byte("key")))
	_, err = ts.Get([]byte("key"))
	assert.Equal(t, ErrKeyNotFound, err)

	_, err = ts.Persist()
	require.NoError(t, err)
	_, err = ps.Get([]byte("key"))
	assert.Equal(t, ErrKeyNotFound, err)
}
