// Package typed reinterprets byte buffers as slices of fixed-width values
// without copying.
//
// The returned slices alias the input buffer. Callers must keep the buffer
// alive and unmodified for as long as the view is used; for memory-mapped
// columns that means until the owning column is closed.
package typed

import (
	"errors"
	"unsafe"

	"github.com/hupe1980/colq/column"
)

// ErrMisaligned is returned when a buffer's address does not satisfy the
// alignment of the requested value type.
var ErrMisaligned = errors.New("typed: buffer is not aligned for value type")

// Aligned reports whether b starts at an address suitable for T.
// Empty buffers are always aligned.
func Aligned[T column.Value](b []byte) bool {
	if len(b) == 0 {
		return true
	}
	var zero T
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%unsafe.Alignof(zero) == 0
}

// Slice returns a read-only view of b as len(b)/width values of T in native
// byte order. Trailing bytes shorter than one value are dropped. Values are
// not inspected.
func Slice[T column.Value](b []byte) ([]T, error) {
	var zero T
	n := len(b) / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil, nil
	}
	if !Aligned[T](b) {
		return nil, ErrMisaligned
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil //nolint:gosec // alignment checked above
}

// Bytes returns the byte view of s. It is the inverse of Slice.
func Bytes[T column.Value](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero))) //nolint:gosec // unsafe is required for zero-copy writes
}
