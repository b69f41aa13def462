package generator

import (
	"math/rand"

	"github.com/hupe1980/colq/column"
)

// Source produces column values one at a time.
type Source[T column.Value] interface {
	Next() T
}

// SourceFunc adapts a function to a Source.
type SourceFunc[T column.Value] func() T

// Next implements Source.
func (f SourceFunc[T]) Next() T { return f() }

// RandomSource produces pseudo-random values. Each value is null with the
// configured probability; otherwise it is drawn uniformly from
// (-bound, bound), where bound is 100 for int32 and 10000 for int64.
//
// A RandomSource is not safe for concurrent use.
type RandomSource[T column.Value] struct {
	rng             *rand.Rand
	nullProbability float64
	bound           int64
}

// NewRandomSource returns a RandomSource seeded with seed. nullProbability is
// clamped to [0, 1].
func NewRandomSource[T column.Value](seed int64, nullProbability float64) *RandomSource[T] {
	return &RandomSource[T]{
		rng:             rand.New(rand.NewSource(seed)),
		nullProbability: min(max(nullProbability, 0), 1),
		bound:           column.KindOf[T]().Bound(),
	}
}

// NullProbability returns the effective null probability.
func (s *RandomSource[T]) NullProbability() float64 {
	return s.nullProbability
}

// Next implements Source.
func (s *RandomSource[T]) Next() T {
	if s.rng.Float64() < s.nullProbability {
		return column.Null[T]()
	}
	return T(s.rng.Int63n(2*s.bound-1) - (s.bound - 1))
}
