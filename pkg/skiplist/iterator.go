package skiplist

// Iterator is a read-only cursor over the list in key order. A fresh iterator
// is invalid until positioned by Seek, SeekForPrev, SeekToFirst, or
// SeekToLast. An Iterator is not safe for concurrent use by multiple
// goroutines, but any number of iterators may run concurrently with each
// other and with the writer; an iterator never observes a partially
// constructed node.
type Iterator struct {
	list *SkipList
	nd   *node
}

// NewIterator returns a new iterator over the list.
func (s *SkipList) NewIterator() *Iterator {
	return &Iterator{list: s}
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool {
	return it.nd != nil
}

// Key returns the key at the current position, or nil when the iterator is
// invalid. The slice aliases arena memory: it must not be modified, and it is
// only valid while the list's arena is open.
func (it *Iterator) Key() []byte {
	if it.nd == nil {
		return nil
	}
	return it.nd.key()
}

// Next advances to the next entry in key order. Calling Next on an invalid
// iterator is a no-op.
func (it *Iterator) Next() {
	if it.nd == nil {
		return
	}
	it.nd = it.nd.next(0)
}

// Prev moves to the previous entry, invalidating the iterator when positioned
// at the first one. There are no back links; the predecessor is found by a
// fresh descending search from head, O(log n) expected.
func (it *Iterator) Prev() {
	if it.nd == nil {
		return
	}
	it.nd = it.list.findLessThan(it.nd.key())
}

// Seek positions the iterator at the first entry with key >= target, or
// invalidates it if every key is smaller.
func (it *Iterator) Seek(target []byte) {
	it.nd = it.list.findGreaterOrEqual(target, nil)
}

// SeekForPrev positions the iterator at the last entry with key <= target, or
// invalidates it if every key is larger.
func (it *Iterator) SeekForPrev(target []byte) {
	it.Seek(target)
	if !it.Valid() {
		// Every key is < target; the last one, if any, is the answer.
		it.SeekToLast()
	} else if it.list.cmp(it.nd.key(), target) > 0 {
		it.Prev()
	}
}

// SeekToFirst positions the iterator at the smallest key.
func (it *Iterator) SeekToFirst() {
	it.nd = it.list.head.next(0)
}

// SeekToLast positions the iterator at the largest key.
func (it *Iterator) SeekToLast() {
	it.nd = it.list.findLast()
}
