package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/column"
	"github.com/hupe1980/colq/internal/typed"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Int32Column generates n int32 values in (-100, 100), each null with
// probability nullRate.
func (r *RNG) Int32Column(n int, nullRate float64) []int32 {
	return Column[int32](r, n, nullRate)
}

// Int64Column generates n int64 values in (-10000, 10000), each null with
// probability nullRate.
func (r *RNG) Int64Column(n int, nullRate float64) []int64 {
	return Column[int64](r, n, nullRate)
}

// Column generates n values of T bounded by the kind's generator bound, each
// null with probability nullRate.
func Column[T column.Value](r *RNG, n int, nullRate float64) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	bound := column.KindOf[T]().Bound()
	out := make([]T, n)
	for i := range out {
		if r.rand.Float64() < nullRate {
			out[i] = column.Null[T]()
			continue
		}
		out[i] = T(r.rand.Int63n(2*bound-1) - (bound - 1))
	}
	return out
}

// EdgeValues returns the extreme non-null values of T together with the null
// sentinel.
func EdgeValues[T column.Value]() []T {
	null := column.Null[T]()
	maxV := ^null // all bits but the sign bit
	return []T{null, null + 1, -1, 0, 1, maxV - 1, maxV}
}

// NullCount counts the null sentinels in vals.
func NullCount[T column.Value](vals []T) int {
	n := 0
	for _, v := range vals {
		if column.IsNull(v) {
			n++
		}
	}
	return n
}

// WriteColumn writes vals as a raw column file named name inside dir and
// compresses it with c. It returns the raw and compressed paths.
func WriteColumn[T column.Value](tb testing.TB, dir, name string, vals []T, c codec.Codec) (string, string) {
	tb.Helper()

	raw := filepath.Join(dir, name)
	if err := os.WriteFile(raw, typed.Bytes(vals), 0o644); err != nil {
		tb.Fatalf("write raw column: %v", err)
	}

	compressed := raw + c.Ext()
	f, err := os.Create(compressed)
	if err != nil {
		tb.Fatalf("create compressed column: %v", err)
	}
	defer f.Close()

	w, err := c.NewWriter(f)
	if err != nil {
		tb.Fatalf("codec %s writer: %v", c.Name(), err)
	}
	if _, err := w.Write(typed.Bytes(vals)); err != nil {
		tb.Fatalf("compress column: %v", err)
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("close codec writer: %v", err)
	}
	return raw, compressed
}

// NullRate is the fraction of nulls in vals (0 for an empty slice).
func NullRate[T column.Value](vals []T) float64 {
	if len(vals) == 0 {
		return 0
	}
	return float64(NullCount(vals)) / float64(len(vals))
}
