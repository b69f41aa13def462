// Package testutil provides testing utilities for colq.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic RNG, random column generators with a
// configurable null density, and helpers that write column file pairs.
//
// # Random Columns
//
//	rng := testutil.NewRNG(seed)
//	a := rng.Int32Column(1000, 0.9) // ~90% nulls
//	b := rng.Int64Column(1000, 0.1)
//
// # Column Files
//
//	raw, compressed := testutil.WriteColumn(t, dir, "a.bin", a, codec.LZ4{})
package testutil
