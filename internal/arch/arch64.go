//go:build amd64 || arm64

// Package arch sizes atomic words to the platform word so that the counters
// shared between a single writer and lock-free readers use native-width
// atomic operations on both 32-bit and 64-bit targets.
package arch

import "sync/atomic"

type (
	AtomicInt  = atomic.Int64
	AtomicUint = atomic.Uint64
)

func IntToArchSize(n int) int64 {
	return int64(n)
}

func UintToArchSize(n uint) uint64 {
	return uint64(n)
}
