package skiplist

import (
	"sync/atomic"
	"unsafe"

	"talus/pkg/arena"
)

const (
	// maxTowerHeight caps the tower array backing every node. Configured
	// maximum heights are clamped to it.
	maxTowerHeight = 20

	maxNodeSize = uint(unsafe.Sizeof(node{}))
	linkSize    = uint(unsafe.Sizeof(atomic.Pointer[node]{}))
)

// node is a skiplist entry laid out by hand in arena memory: a fixed header,
// then height forward links, then the key bytes. Most nodes do not need the
// full tower, since the probability of each successive level decreases
// geometrically, so the allocation is deliberately truncated to height slots;
// the key follows immediately after the truncated tower. The arena reserves
// the unused tail of the tower as overflow so the nominal struct footprint
// never crosses a block boundary.
//
// A node's height and key never change after newNode returns.
type node struct {
	keySize uint32
	height  uint32

	// tower[i] is the successor at level i. Links are published with
	// release stores and read with acquire loads; only tower[:height] is
	// part of the allocation.
	tower [maxTowerHeight]atomic.Pointer[node]
}

// nodeSize is the allocated footprint of a node of the given height, not
// counting the key bytes that follow it.
func nodeSize(height uint32) uint {
	return maxNodeSize - (maxTowerHeight-uint(height))*linkSize
}

// newNode allocates a node in the arena and copies key inline after the
// truncated tower. The node is unreachable until the caller publishes it, so
// initializing stores need no ordering.
func newNode(a *arena.Arena, height uint32, key []byte) *node {
	size := nodeSize(height)
	buf := a.AllocAligned(size+uint(len(key)), maxNodeSize-size)
	nd := (*node)(unsafe.Pointer(&buf[0]))
	nd.keySize = uint32(len(key))
	nd.height = height
	copy(buf[size:], key)
	return nd
}

// key returns the node's key bytes in arena memory. The slice must not be
// modified.
func (n *node) key() []byte {
	if n.keySize == 0 {
		return nil
	}
	p := unsafe.Add(unsafe.Pointer(n), nodeSize(n.height))
	return unsafe.Slice((*byte)(p), n.keySize)
}

// next returns the successor at the given level with acquire semantics.
func (n *node) next(level int) *node {
	return n.tower[level].Load()
}

// setNext publishes the successor at the given level with release semantics.
func (n *node) setNext(level int, nd *node) {
	n.tower[level].Store(nd)
}
