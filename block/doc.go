// Package block implements pull-based iteration over typed values stored in a
// stream of opaque byte blocks.
//
// # Overview
//
// A Source hands out byte blocks until it returns io.EOF. An Iterator turns
// those blocks into typed values:
//
//	src := block.NewSliceSource(raw, 64*1024, 4)
//	it := block.NewIterator[int32](src)
//	for v := range it.All() {
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
//
// The same Iterator serves flat memory-mapped bytes (SliceSource) and
// decompressed streams (ReaderSource over a codec reader), so every access
// path shares one decoding routine.
//
// # Block Boundaries
//
// Blocks need not start or end on a value boundary, and need not be aligned
// in memory. Partial values are carried across refills; a stream that ends
// with a partial value reports ErrTrailingBytes.
package block
