// Package query evaluates predicate counts over one or two columns.
//
// Every query takes an access Mode selecting how values are read: the
// whole-buffer zero-copy view, the raw block iterator, or the compressed block
// iterator. All modes produce identical results for the same data.
//
//	n, err := query.CountNonNull(a, b, query.ModeCompressedBlocks)
//
// Two-column queries zip the columns by position; the columns must have the
// same length.
package query

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colq/block"
	"github.com/hupe1980/colq/column"
)

var (
	// ErrLengthMismatch is returned when zipped columns differ in length.
	ErrLengthMismatch = errors.New("query: columns have different lengths")

	// ErrUnknownMode is returned for an unsupported access mode.
	ErrUnknownMode = errors.New("query: unknown access mode")

	// ErrTooManyRows is returned by Select when positions do not fit a bitmap.
	ErrTooManyRows = errors.New("query: too many rows for a position bitmap")
)

// Mode selects how a query reads column values.
type Mode int

const (
	// ModeView reads the whole memory-mapped raw buffer as a typed slice.
	ModeView Mode = iota
	// ModeRawBlocks iterates the raw buffer block by block.
	ModeRawBlocks
	// ModeCompressedBlocks decompresses the compressed file block by block.
	ModeCompressedBlocks
)

// Modes returns every access mode.
func Modes() []Mode {
	return []Mode{ModeView, ModeRawBlocks, ModeCompressedBlocks}
}

func (m Mode) String() string {
	switch m {
	case ModeView:
		return "view"
	case ModeRawBlocks:
		return "raw"
	case ModeCompressedBlocks:
		return "compressed"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses the name returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Column is the read interface the evaluator needs; *store.Column
// implements it. View and the iterators report a column that can no longer
// be read, such as a closed one, as an error rather than as empty.
type Column[T column.Value] interface {
	Len() int
	View() ([]T, error)
	RawIterator() *block.Iterator[T]
	CompressedIterator() (*block.Iterator[T], error)
}

// Predicate filters a pair of zipped values.
type Predicate[A, B column.Value] func(a A, b B) bool

// NonNull matches positions where neither value is null.
func NonNull[A, B column.Value]() Predicate[A, B] {
	return func(a A, b B) bool {
		return !column.IsNull(a) && !column.IsNull(b)
	}
}

// NonNullAndGreater matches positions where a is not null and b > threshold.
func NonNullAndGreater[A, B column.Value](threshold B) Predicate[A, B] {
	return func(a A, b B) bool {
		return !column.IsNull(a) && b > threshold
	}
}

// CountNonNull counts positions where neither column is null.
func CountNonNull[A, B column.Value](a Column[A], b Column[B], mode Mode) (int64, error) {
	return CountWhere(a, b, mode, NonNull[A, B]())
}

// CountWhere counts positions whose value pair satisfies pred.
func CountWhere[A, B column.Value](a Column[A], b Column[B], mode Mode, pred Predicate[A, B]) (int64, error) {
	var n int64
	err := zip(a, b, mode, func(_ int, x A, y B) {
		if pred(x, y) {
			n++
		}
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Select returns the positions whose value pair satisfies pred.
func Select[A, B column.Value](a Column[A], b Column[B], mode Mode, pred Predicate[A, B]) (*roaring.Bitmap, error) {
	if uint64(a.Len()) > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyRows, a.Len())
	}
	bm := roaring.New()
	err := zip(a, b, mode, func(i int, x A, y B) {
		if pred(x, y) {
			bm.Add(uint32(i))
		}
	})
	if err != nil {
		return nil, err
	}
	bm.RunOptimize()
	return bm, nil
}

// CountColumn counts the non-null values of a single column.
func CountColumn[T column.Value](c Column[T], mode Mode) (int64, error) {
	var n int64
	visit := func(v T) {
		if !column.IsNull(v) {
			n++
		}
	}

	switch mode {
	case ModeView:
		vals, err := c.View()
		if err != nil {
			return 0, err
		}
		for _, v := range vals {
			visit(v)
		}
		return n, nil
	case ModeRawBlocks, ModeCompressedBlocks:
		it, err := iterator(c, mode)
		if err != nil {
			return 0, err
		}
		defer it.Close()
		for v := range it.All() {
			visit(v)
		}
		if err := it.Err(); err != nil {
			return 0, err
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

func iterator[T column.Value](c Column[T], mode Mode) (*block.Iterator[T], error) {
	if mode == ModeCompressedBlocks {
		return c.CompressedIterator()
	}
	return c.RawIterator(), nil
}

// zip visits the value pairs of a and b in position order.
func zip[A, B column.Value](a Column[A], b Column[B], mode Mode, visit func(i int, x A, y B)) error {
	if a.Len() != b.Len() {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a.Len(), b.Len())
	}

	switch mode {
	case ModeView:
		av, err := a.View()
		if err != nil {
			return err
		}
		bv, err := b.View()
		if err != nil {
			return err
		}
		if len(av) != len(bv) {
			return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(av), len(bv))
		}
		for i := range av {
			visit(i, av[i], bv[i])
		}
		return nil
	case ModeRawBlocks, ModeCompressedBlocks:
		ai, err := iterator(a, mode)
		if err != nil {
			return err
		}
		defer ai.Close()

		bi, err := iterator(b, mode)
		if err != nil {
			return err
		}
		defer bi.Close()

		return zipIterators(ai, bi, visit)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

func zipIterators[A, B column.Value](ai *block.Iterator[A], bi *block.Iterator[B], visit func(i int, x A, y B)) error {
	for i := 0; ; i++ {
		x, okA := ai.Next()
		y, okB := bi.Next()
		if !okA || !okB {
			if err := errors.Join(ai.Err(), bi.Err()); err != nil {
				return err
			}
			if okA != okB {
				return fmt.Errorf("%w: streams end at different positions", ErrLengthMismatch)
			}
			return nil
		}
		visit(i, x, y)
	}
}
