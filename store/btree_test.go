package store

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, kv custody.ReadOnlyKVStore, key string) []byte {
	t.Helper()
	val, err := kv.Get([]byte(key))
	require.NoError(t, err)
	return val
}

func keys(t *testing.T, kv custody.ReadOnlyKVStore, start, end []byte) []string {
	t.Helper()
	it, err := kv.Iterator(start, end)
	require.NoError(t, err)
	models, err := ReadAll(it)
	require.NoError(t, err)
	res := make([]string, len(models))
	for i, m := range models {
		res[i] = string(m.Key)
	}
	return res
}

func TestMemStoreGetSet(t *testing.T) {
	db := MemStore()

	assert.Nil(t, mustGet(t, db, "a"))
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	assert.Equal(t, []byte("1"), mustGet(t, db, "a"))

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.Delete([]byte("a")))
	assert.Nil(t, mustGet(t, db, "a"))
	has, err = db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	assert.Error(t, db.Set(nil, []byte("x")))
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("keep"), []byte("old")))
	require.NoError(t, db.Set([]byte("drop"), []byte("old")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("keep"), []byte("new")))
	require.NoError(t, cache.Delete([]byte("drop")))
	require.NoError(t, cache.Set([]byte("fresh"), []byte("1")))

	// Parent does not see anything until written.
	assert.Equal(t, []byte("old"), mustGet(t, db, "keep"))
	assert.Equal(t, []byte("old"), mustGet(t, db, "drop"))
	assert.Nil(t, mustGet(t, db, "fresh"))

	// Cache sees its own writes.
	assert.Equal(t, []byte("new"), mustGet(t, cache, "keep"))
	assert.Nil(t, mustGet(t, cache, "drop"))

	require.NoError(t, cache.Write())
	assert.Equal(t, []byte("new"), mustGet(t, db, "keep"))
	assert.Nil(t, mustGet(t, db, "drop"))
	assert.Equal(t, []byte("1"), mustGet(t, db, "fresh"))

	cache = db.CacheWrap()
	require.NoError(t, cache.Set([]byte("keep"), []byte("discarded")))
	cache.Discard()
	assert.Equal(t, []byte("new"), mustGet(t, db, "keep"))
}

func TestNestedCacheWrap(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("k"), []byte("v")))
	require.NoError(t, inner.Write())
	assert.Equal(t, []byte("v"), mustGet(t, outer, "k"))
	assert.Nil(t, mustGet(t, db, "k"))

	require.NoError(t, outer.Write())
	assert.Equal(t, []byte("v"), mustGet(t, db, "k"))
}

func TestSetCopiesValue(t *testing.T) {
	db := MemStore()
	val := []byte("abc")
	require.NoError(t, db.Set([]byte("k"), val))
	val[0] = 'X'
	assert.Equal(t, []byte("abc"), mustGet(t, db, "k"))
}

func TestIteratorCombinesLayers(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, db.Set([]byte(k), []byte(k)))
	}

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("b")))
	require.NoError(t, cache.Delete([]byte("c")))
	require.NoError(t, cache.Set([]byte("e"), []byte("E")))
	require.NoError(t, cache.Set([]byte("h"), []byte("h")))

	assert.Equal(t, []string{"a", "b", "e", "g", "h"}, keys(t, cache, nil, nil))
	assert.Equal(t, []string{"b", "e"}, keys(t, cache, []byte("b"), []byte("f")))
	assert.Equal(t, []string{"a", "b"}, keys(t, cache, nil, []byte("c")))
	assert.Equal(t, []string{"g", "h"}, keys(t, cache, []byte("f"), nil))

	it, err := cache.Iterator([]byte("e"), []byte("f"))
	require.NoError(t, err)
	models, err := ReadAll(it)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("E"), models[0].Value)
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":       {prefix: []byte{1, 2}, want: []byte{1, 3}},
		"carry":        {prefix: []byte{1, 0xFF}, want: []byte{2}},
		"all ff":       {prefix: []byte{0xFF, 0xFF}, want: nil},
		"empty prefix": {prefix: []byte{}, want: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrefixEnd(tc.prefix))
		})
	}
}
