package block

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/hupe1980/colq/column"
	"github.com/hupe1980/colq/internal/typed"
)

// ErrTrailingBytes is returned when a stream ends in the middle of a value.
var ErrTrailingBytes = errors.New("block: stream ends with a partial value")

// Iterator yields the typed values of a block stream one at a time.
//
// It keeps the current block as a typed slice and a cursor into it, and pulls
// the next block only when the current one is exhausted. Blocks that start on
// a suitably aligned address and carry no partial value from the previous
// block are decoded zero-copy; otherwise the bytes are assembled in an owned,
// aligned buffer. A value split across two blocks is completed from a carry
// buffer.
//
// An Iterator is not safe for concurrent use. Once exhausted it stays
// exhausted; construct a new Iterator to restart.
type Iterator[T column.Value] struct {
	src   Source
	width int

	cur []T // typed view of the current block
	pos int // cursor into cur

	carry []byte // bytes of a value not yet complete, len < width
	own   []T    // owned buffer for blocks that cannot be viewed in place

	blocks int
	err    error
	done   bool
}

// NewIterator returns an Iterator over the blocks produced by src.
func NewIterator[T column.Value](src Source) *Iterator[T] {
	w := column.Width[T]()
	return &Iterator[T]{
		src:   src,
		width: w,
		carry: make([]byte, 0, w),
	}
}

// Next returns the next value. It returns false when the stream is exhausted
// or failed; check Err to tell the two apart.
func (it *Iterator[T]) Next() (T, bool) {
	for it.pos >= len(it.cur) {
		if it.done {
			var zero T
			return zero, false
		}
		it.fill()
	}
	v := it.cur[it.pos]
	it.pos++
	return v, true
}

// Err returns the first error encountered, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Blocks returns the number of non-empty blocks pulled so far.
func (it *Iterator[T]) Blocks() int {
	return it.blocks
}

// All returns the remaining values as a sequence. Check Err after ranging.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close exhausts the iterator and releases the source if it is closable.
func (it *Iterator[T]) Close() error {
	it.done = true
	it.cur = nil
	it.pos = 0
	if c, ok := it.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// fill pulls one block from the source and installs it as the current block.
func (it *Iterator[T]) fill() {
	b, err := it.src.Next()
	if err != nil {
		it.done = true
		it.cur = nil
		it.pos = 0
		if errors.Is(err, io.EOF) {
			if len(it.carry) > 0 {
				it.err = fmt.Errorf("%w: %d dangling bytes", ErrTrailingBytes, len(it.carry))
			}
			return
		}
		it.err = err
		return
	}
	if len(b) == 0 {
		return
	}
	it.blocks++
	it.pos = 0

	if len(it.carry) == 0 && typed.Aligned[T](b) {
		n := len(b) / it.width * it.width
		// Slice cannot fail here: alignment was checked.
		it.cur, _ = typed.Slice[T](b[:n])
		it.carry = append(it.carry, b[n:]...)
		return
	}

	total := len(it.carry) + len(b)
	n := total / it.width
	if n == 0 {
		it.carry = append(it.carry, b...)
		it.cur = nil
		return
	}
	if cap(it.own) < n {
		it.own = make([]T, n)
	}
	it.cur = it.own[:n]
	dst := typed.Bytes(it.cur)
	k := copy(dst, it.carry)
	used := copy(dst[k:], b)
	it.carry = append(it.carry[:0], b[used:]...)
}
