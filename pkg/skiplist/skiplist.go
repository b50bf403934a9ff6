// Package skiplist implements a concurrent ordered set of byte-string keys,
// the in-memory index behind a log-structured engine's write buffer. Reads
// are lock-free: any number of goroutines may call Contains or iterate while
// a writer inserts. Writers serialize on an internal mutex. Nodes live in an
// arena and are never freed individually; dropping the list and closing its
// arena reclaims everything at once.
//
// Keys and entries are immutable once added and deletion is not supported.
// Higher-level code is expected to encode versions or tombstones into new
// keys and to erase by rotating the whole list.
package skiplist

import (
	"bytes"
	"math"
	"sync"

	"talus/internal/arch"
	"talus/internal/splitmix64"
	"talus/pkg/arena"
)

const (
	// DefaultMaxHeight is the default cap on node height.
	DefaultMaxHeight = 12

	// DefaultBranching is the default branching factor. On average one node
	// in DefaultBranching is promoted to the next level.
	DefaultBranching = 4

	defaultSeed = 0xdeadbeef
)

// Comparator compares two keys and returns a negative number if a < b, zero
// if a == b, and a positive number if a > b. It must be total, deterministic,
// and must not panic; it is the only user code the list calls, and it may be
// called concurrently from readers and the writer.
type Comparator func(a, b []byte) int

// BytewiseComparator is the default comparator, ordering keys as bytes.Compare.
func BytewiseComparator(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Options tunes a list at construction time. Zero values select defaults.
type Options struct {
	// MaxHeight bounds node height. Values above the internal tower cap of
	// 20 are clamped.
	MaxHeight int

	// Branching is the inverse promotion probability per level.
	Branching int

	// Seed seeds the height generator. A fixed seed makes node heights, and
	// therefore the exact shape of the list, reproducible across runs.
	Seed uint64
}

// SkipList is a probabilistic ordered set allocated in an arena. The zero
// value is not usable; construct with New or NewWithOptions.
type SkipList struct {
	arena *arena.Arena
	cmp   Comparator
	head  *node // sentinel of maximal height; its key is never compared

	height arch.AtomicUint // current max height, 1 <= height <= kMaxHeight
	count  arch.AtomicInt

	mu   sync.Mutex // serializes writers; readers never take it
	seed uint64     // splitmix64 state, stepped only under mu

	kMaxHeight    int
	probabilities [maxTowerHeight]uint32
}

// New constructs an empty list over the given arena with default height and
// branching parameters. A nil cmp selects BytewiseComparator. The list takes
// ownership of the arena: every node, key, and the head sentinel is allocated
// from it, and the arena must stay open for the lifetime of the list and of
// every slice handed out by its iterators.
func New(a *arena.Arena, cmp Comparator) *SkipList {
	return NewWithOptions(a, cmp, Options{})
}

// NewWithOptions is New with explicit tuning parameters.
func NewWithOptions(a *arena.Arena, cmp Comparator, opts Options) *SkipList {
	if cmp == nil {
		cmp = BytewiseComparator
	}
	maxHeight := opts.MaxHeight
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	if maxHeight > maxTowerHeight {
		maxHeight = maxTowerHeight
	}
	branching := opts.Branching
	if branching <= 1 {
		branching = DefaultBranching
	}
	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	s := &SkipList{
		arena:      a,
		cmp:        cmp,
		seed:       seed,
		kMaxHeight: maxHeight,
	}

	// Precompute the cumulative level probabilities so that a single random
	// draw picks a height, with promotion probability 1/branching per level.
	p := 1.0
	for i := 0; i < maxHeight; i++ {
		s.probabilities[i] = uint32(float64(math.MaxUint32) * p)
		p /= float64(branching)
	}

	s.head = newNode(a, uint32(maxHeight), nil)
	for i := 0; i < maxHeight; i++ {
		s.head.setNext(i, nil)
	}
	s.height.Store(1)

	return s
}

// Insert adds key to the set, copying it into the arena; the caller's slice
// is not retained. Inserts are serialized on the internal write mutex and may
// run concurrently with any number of readers: once Insert returns, every
// traversal that starts afterwards observes the key. The caller must
// guarantee the key is not already present; a duplicate insert leaves the
// list unchanged.
func (s *SkipList) Insert(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev [maxTowerHeight]*node
	if x := s.findGreaterOrEqual(key, &prev); x != nil && s.cmp(key, x.key()) == 0 {
		// Contract violation. Keep the structure valid and bail.
		return
	}

	height := s.randomHeight()
	listHeight := int(s.height.Load())
	for i := listHeight; i < height; i++ {
		prev[i] = s.head
	}

	nd := newNode(s.arena, uint32(height), key)

	// The node is not reachable yet: seed its own forward links before any
	// predecessor link is published, so a reader that wins the race to see
	// the node always finds it fully constructed.
	for i := 0; i < height; i++ {
		nd.setNext(i, prev[i].next(i))
	}
	for i := 0; i < height; i++ {
		prev[i].setNext(i, nd)
	}

	if height > listHeight {
		// Publish the raised height after linking. Readers still holding
		// the old height simply start lower and find the key on level 0.
		s.height.Store(arch.UintToArchSize(uint(height)))
	}
	s.count.Add(1)
}

// Contains reports whether key is in the set. It never blocks and is safe to
// call concurrently with Insert and other readers.
func (s *SkipList) Contains(key []byte) bool {
	x := s.findGreaterOrEqual(key, nil)
	return x != nil && s.cmp(key, x.key()) == 0
}

// Count returns the number of entries inserted.
func (s *SkipList) Count() int {
	return int(s.count.Load())
}

// Height returns the highest level at which any node is linked.
func (s *SkipList) Height() uint {
	return uint(s.height.Load())
}

// MemoryUsage reports the bytes committed by the backing arena. Monotonic;
// intended for write-buffer rotation decisions.
func (s *SkipList) MemoryUsage() uint {
	return s.arena.MemoryUsage()
}

// Arena returns the arena backing this list.
func (s *SkipList) Arena() *arena.Arena {
	return s.arena
}

// randomHeight draws a height in [1, kMaxHeight] from a single random draw
// against the precomputed probability table. Called only under mu.
func (s *SkipList) randomHeight() int {
	rnd := uint32(splitmix64.Next(&s.seed))
	h := 1
	for h < s.kMaxHeight && rnd <= s.probabilities[h] {
		h++
	}
	return h
}

// findGreaterOrEqual returns the first node with key >= target, or nil if no
// such node exists. When prev is non-nil it records the predecessor at every
// level below the current height for a following splice.
func (s *SkipList) findGreaterOrEqual(target []byte, prev *[maxTowerHeight]*node) *node {
	x := s.head
	level := int(s.height.Load()) - 1
	for {
		next := x.next(level)
		if next != nil && s.cmp(target, next.key()) > 0 {
			// Keep searching at this level.
			x = next
			continue
		}
		if prev != nil {
			prev[level] = x
		}
		if level == 0 {
			return next
		}
		level--
	}
}

// findLessThan returns the last node with key < target, or nil when target is
// less than or equal to every key in the list.
func (s *SkipList) findLessThan(target []byte) *node {
	x := s.head
	level := int(s.height.Load()) - 1
	for {
		next := x.next(level)
		if next != nil && s.cmp(next.key(), target) < 0 {
			x = next
			continue
		}
		if level == 0 {
			if x == s.head {
				return nil
			}
			return x
		}
		level--
	}
}

// findLast returns the rightmost node on level 0, or nil when the list is
// empty.
func (s *SkipList) findLast() *node {
	x := s.head
	level := int(s.height.Load()) - 1
	for {
		next := x.next(level)
		if next != nil {
			x = next
			continue
		}
		if level == 0 {
			if x == s.head {
				return nil
			}
			return x
		}
		level--
	}
}
