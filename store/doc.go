// Package store implements the column store: a typed column backed by a raw
// flat file and a block-compressed copy of it.
//
// # Access Modes
//
//	col, err := store.Open[int32]("int32col1.bin", "int32col1.bin.lz4")
//	if err != nil { ... }
//	defer col.Close()
//
//	vals := col.Values()             // zero-copy view of the raw mapping
//	vals, err := col.View()          // same, but ErrClosed after Close
//	it := col.RawIterator()          // block-wise over the raw mapping
//	zit, err := col.CompressedIterator() // block-wise over decompressed bytes
//
// All three modes yield the same sequence of values. After Close, View and
// CompressedIterator fail with ErrClosed and a raw iterator reports it from
// Err.
//
// # Consistency
//
// Open rejects a raw file whose length is not a multiple of the value width.
// By default it also decompresses the compressed file once and checks that it
// has the raw file's length (see WithVerify).
//
// # Thread Safety
//
// A Column is immutable after Open and safe for concurrent readers. Iterators
// are not; give each goroutine its own.
package store
