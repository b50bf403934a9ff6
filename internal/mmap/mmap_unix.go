//go:build unix

// Package mmap is not used for mapping disk files into memory, but rather to
// allocate large contiguous chunks of memory outside the Go runtime memory
// allocator and garbage collection. This also has the benefit of lazily
// allocating memory pages.
package mmap

import (
	"golang.org/x/sys/unix"
)

// New allocates a large contiguous chunk of memory using the OS mmap call.
// This is manually managed memory that is not garbage collected by the Go
// runtime. You must call Free with the buffer when finished. The returned
// buffer is exactly size bytes long; the OS rounds the underlying mapping up
// to a multiple of the system page size, but that tail is not part of the
// slice.
func New(size int) ([]byte, error) {
	if size < 1 {
		panic("invalid mmap allocation size")
	}

	// Pass fd -1 because we are using MAP_ANON. This indicates that there is
	// no backing disk file.
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Free releases the memory allocated by the OS with the mmap call. The
// original []byte buffer must be passed back to this function. Do not attempt
// to resize the []byte buffer with append, instead create a new buffer and
// copy() from the old buffer.
func Free(data []byte) error {
	return unix.Munmap(data)
}
