//go:build !unix

package mmap

import "errors"

var errUnsupported = errors.New("talus: anonymous mappings are not supported on this platform")

// New always fails on platforms without anonymous mappings. Callers fall back
// to heap-allocated buffers.
func New(size int) ([]byte, error) {
	if size < 1 {
		panic("invalid mmap allocation size")
	}
	return nil, errUnsupported
}

// Free is a no-op on platforms without anonymous mappings.
func Free(data []byte) error {
	return nil
}
