// Package colq is a minimal columnar storage engine for fixed-width integer
// columns.
//
// A column is stored twice: as a raw flat file of native-order values and as
// a block-compressed copy. Both are memory-mapped read-only and can be read in
// three ways, selected per query by query.Mode:
//
//   - ModeView: the whole raw buffer reinterpreted as a typed slice (zero-copy)
//   - ModeRawBlocks: the raw buffer streamed block by block
//   - ModeCompressedBlocks: the compressed copy decompressed block by block
//
// All modes produce identical query results.
//
// # Nulls
//
// Nulls are encoded in-band: a value is null iff it equals the minimum of
// its type (math.MinInt32, math.MinInt64).
//
// # Quick Start
//
//	ctx := context.Background()
//	dir := colq.DefaultDir()
//
//	// Writes int32col1.bin, int64col1.bin and their .lz4 copies.
//	_, _ = colq.Generate(ctx, dir, 10_000_000, 0.9)
//
//	t, _ := colq.OpenTable(dir)
//	defer t.Close()
//
//	n, _ := t.CountNonNull(ctx, query.ModeCompressedBlocks)
//	m, _ := t.CountWhere(ctx, query.ModeView, query.NonNullAndGreater[int32](int64(100)))
//
// # Packages
//
//   - column: kinds and null encoding
//   - block: block sources and the typed block iterator
//   - codec: LZ4, zstd and S2 stream codecs
//   - store: memory-mapped column files
//   - query: count and select evaluation over zipped columns
//   - generator: synthetic column files
package colq
