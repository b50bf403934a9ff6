package skiplist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"talus/pkg/arena"
)

func newTestList(t *testing.T, keys ...string) *SkipList {
	t.Helper()
	a := arena.New()
	t.Cleanup(func() { a.Close() })
	s := New(a, nil)
	for _, k := range keys {
		s.Insert([]byte(k))
	}
	return s
}

func TestIteratorSeek(t *testing.T) {
	s := newTestList(t, "b", "d", "f", "h")
	it := s.NewIterator()

	// Exact key.
	it.Seek([]byte("d"))
	require.True(t, it.Valid())
	require.Equal(t, "d", string(it.Key()))

	// Between keys: least key >= target.
	it.Seek([]byte("c"))
	require.True(t, it.Valid())
	require.Equal(t, "d", string(it.Key()))

	// Before the first key.
	it.Seek([]byte("a"))
	require.True(t, it.Valid())
	require.Equal(t, "b", string(it.Key()))

	// Past the last key.
	it.Seek([]byte("z"))
	require.False(t, it.Valid())
}

func TestIteratorSeekForPrev(t *testing.T) {
	s := newTestList(t, "b", "d", "f", "h")
	it := s.NewIterator()

	it.SeekForPrev([]byte("d"))
	require.True(t, it.Valid())
	require.Equal(t, "d", string(it.Key()))

	it.SeekForPrev([]byte("e"))
	require.True(t, it.Valid())
	require.Equal(t, "d", string(it.Key()))

	it.SeekForPrev([]byte("a"))
	require.False(t, it.Valid())

	it.SeekForPrev([]byte("z"))
	require.True(t, it.Valid())
	require.Equal(t, "h", string(it.Key()))
}

func TestIteratorLastAndBack(t *testing.T) {
	s := newTestList(t, "a", "b", "c")
	it := s.NewIterator()

	it.SeekToLast()
	require.True(t, it.Valid())
	require.Equal(t, "c", string(it.Key()))

	// Next from the last entry falls off the end.
	it.Next()
	require.False(t, it.Valid())

	// Prev from the last entry lands on the second largest.
	it.SeekToLast()
	it.Prev()
	require.True(t, it.Valid())
	require.Equal(t, "b", string(it.Key()))

	// Prev from the first entry invalidates.
	it.SeekToFirst()
	require.Equal(t, "a", string(it.Key()))
	it.Prev()
	require.False(t, it.Valid())
}

func TestIteratorInvalidOperations(t *testing.T) {
	s := newTestList(t, "a")
	it := s.NewIterator()

	// A fresh iterator is invalid; relative moves stay put and Key is nil.
	require.False(t, it.Valid())
	require.Nil(t, it.Key())
	it.Next()
	it.Prev()
	require.False(t, it.Valid())
}

func TestIteratorSingleEntry(t *testing.T) {
	s := newTestList(t, "only")
	it := s.NewIterator()

	it.SeekToFirst()
	require.Equal(t, "only", string(it.Key()))
	it.SeekToLast()
	require.Equal(t, "only", string(it.Key()))

	it.Prev()
	require.False(t, it.Valid())

	it.Seek([]byte("only"))
	require.True(t, it.Valid())
	it.Next()
	require.False(t, it.Valid())
}

func TestIteratorsIndependent(t *testing.T) {
	s := newTestList(t, "a", "b", "c")

	it1 := s.NewIterator()
	it2 := s.NewIterator()
	it1.SeekToFirst()
	it2.SeekToLast()

	require.Equal(t, "a", string(it1.Key()))
	require.Equal(t, "c", string(it2.Key()))

	it1.Next()
	require.Equal(t, "b", string(it1.Key()))
	require.Equal(t, "c", string(it2.Key()))
}
