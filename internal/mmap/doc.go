// Package mmap provides read-only memory-mapped access to column files.
//
// # Usage
//
//	m, err := mmap.Open("int32col1.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()              // zero-copy view of the file
//	_ = m.Advise(mmap.AccessSequential)
//	r := m.Reader()                // sequential io.Reader over the mapping
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// # Lifetime
//
// The slice returned by Bytes, and every view derived from it, is valid only
// until Close. Close is idempotent. Mappings are never written through.
//
// Empty files are not mapped; Bytes returns nil for them.
package mmap
