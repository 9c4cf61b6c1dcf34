package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")

	// nothing there yet
	val, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, val)
	has, err := base.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	// set and read it back
	require.NoError(t, base.Set(k, v))
	val, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, val)
	has, err = base.Has(k)
	require.NoError(t, err)
	assert.True(t, has)

	// delete and it is gone
	require.NoError(t, base.Delete(k))
	val, err = base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestCacheWrapWriteCommits(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))

	// cache sees its own writes layered over the base
	val, err := cache.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
	val, err = cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)

	// base untouched until Write
	val, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
	val, err = base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, cache.Write())

	val, err = base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
	val, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestCacheWrapDiscardLeavesNoResidue(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("keep"), []byte("me")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("drop"), []byte("me")))
	require.NoError(t, cache.Delete([]byte("keep")))
	cache.Discard()

	val, err := base.Get([]byte("keep"))
	require.NoError(t, err)
	assert.Equal(t, []byte("me"), val)
	has, err := base.Has([]byte("drop"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestNestedCacheWraps(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("x"), []byte("outer")))

	inner := outer.CacheWrap()
	// inner reads through to outer writes
	val, err := inner.Get([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("outer"), val)

	require.NoError(t, inner.Set([]byte("x"), []byte("inner")))
	require.NoError(t, inner.Write())

	val, err = outer.Get([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("inner"), val)

	// base still clean until the outer layer commits
	val, err = base.Get([]byte("x"))
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, outer.Write())
	val, err = base.Get([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("inner"), val)
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	batch := NewNonAtomicBatch(base)

	require.NoError(t, batch.Set([]byte("one"), []byte("1")))
	require.NoError(t, batch.Set([]byte("two"), []byte("2")))
	require.NoError(t, batch.Delete([]byte("one")))

	// nothing applied yet
	has, err := base.Has([]byte("two"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, batch.Write())

	has, err = base.Has([]byte("one"))
	require.NoError(t, err)
	assert.False(t, has)
	val, err := base.Get([]byte("two"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)

	// batch is reset after write
	require.NoError(t, batch.Write())
}
