package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/hupe1980/colq/block"
	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/column"
	"github.com/hupe1980/colq/internal/mmap"
	"github.com/hupe1980/colq/internal/typed"
)

// Column is an immutable column of fixed-width values backed by a raw file
// and a compressed file, both memory-mapped read-only.
//
// Every slice and iterator obtained from a Column borrows its mappings and
// must not be used after Close.
type Column[T column.Value] struct {
	raw        *mmap.Mapping
	compressed *mmap.Mapping
	values     []T
	rows       int

	codec  codec.Codec
	opts   options
	closed atomic.Bool
}

// Open memory-maps the raw and compressed files of a column.
//
// Open fails with ErrIO if either file is missing or cannot be mapped, with
// ErrFormatMismatch if the raw length is not a multiple of the value width or
// if the configured verification finds the two files disagree, and with
// ErrAlignment if the raw mapping cannot be viewed as T.
func Open[T column.Value](rawPath, compressedPath string, optFns ...Option) (*Column[T], error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	c := o.codec
	if c == nil {
		var ok bool
		if c, ok = codec.ForPath(compressedPath); !ok {
			c = codec.Default
		}
	}

	raw, err := mmap.Open(rawPath)
	if err != nil {
		return nil, ioError("map", rawPath, err)
	}

	compressed, err := mmap.Open(compressedPath)
	if err != nil {
		_ = raw.Close()
		return nil, ioError("map", compressedPath, err)
	}

	col := &Column[T]{
		raw:        raw,
		compressed: compressed,
		codec:      c,
		opts:       o,
	}

	if err := col.init(); err != nil {
		_ = col.Close()
		return nil, err
	}

	o.logger.Debug("column opened",
		"kind", column.KindOf[T]().String(),
		"raw", rawPath,
		"compressed", compressedPath,
		"codec", c.Name(),
		"rows", col.Len(),
	)
	return col, nil
}

func (c *Column[T]) init() error {
	width := column.Width[T]()
	data := c.raw.Bytes()
	if len(data)%width != 0 {
		return &FormatMismatchError{
			Path:   c.raw.Path(),
			Reason: fmt.Sprintf("length %d is not a multiple of %d", len(data), width),
		}
	}

	values, err := typed.Slice[T](data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.raw.Path(), err)
	}
	c.values = values
	c.rows = len(values)

	_ = c.raw.Advise(mmap.AccessSequential)
	_ = c.compressed.Advise(mmap.AccessSequential)

	return c.Verify(c.opts.verify)
}

// Kind returns the column's value kind.
func (c *Column[T]) Kind() column.Kind {
	return column.KindOf[T]()
}

// Codec returns the codec of the compressed source.
func (c *Column[T]) Codec() codec.Codec {
	return c.codec
}

// RawPath returns the path of the raw source.
func (c *Column[T]) RawPath() string {
	return c.raw.Path()
}

// CompressedPath returns the path of the compressed source.
func (c *Column[T]) CompressedPath() string {
	return c.compressed.Path()
}

// Len returns the number of values in the column. It keeps reporting the
// row count after Close.
func (c *Column[T]) Len() int {
	return c.rows
}

// CompressedSize returns the size of the compressed source in bytes.
func (c *Column[T]) CompressedSize() int {
	return c.compressed.Size()
}

// Values returns a zero-copy view of the whole raw source, or nil after
// Close. The slice must be treated as read-only and is valid until Close.
func (c *Column[T]) Values() []T {
	if c.closed.Load() {
		return nil
	}
	return c.values
}

// WillNeed asks the kernel to page in the raw source ahead of a scan.
func (c *Column[T]) WillNeed() error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.raw.Advise(mmap.AccessWillNeed)
}

// View is like Values but fails with ErrClosed after Close, so an empty
// column and a closed one can be told apart.
func (c *Column[T]) View() ([]T, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return c.values, nil
}

// RawIterator returns a new iterator over the raw source in blocks of the
// configured block size. Each call starts from the first value. The iterator
// of a closed column yields nothing and reports ErrClosed from Err.
func (c *Column[T]) RawIterator() *block.Iterator[T] {
	if c.closed.Load() {
		return block.NewIterator[T](block.FuncSource(func() ([]byte, error) {
			return nil, ErrClosed
		}))
	}
	src := block.NewSliceSource(c.raw.Bytes(), c.opts.blockSize, column.Width[T]())
	return block.NewIterator[T](src)
}

// CompressedIterator returns a new iterator that decompresses the compressed
// source block by block. Each call starts from the first value. Close the
// iterator to release decoder resources early.
func (c *Column[T]) CompressedIterator() (*block.Iterator[T], error) {
	src, err := c.compressedSource()
	if err != nil {
		return nil, err
	}
	return block.NewIterator[T](src), nil
}

func (c *Column[T]) compressedSource() (block.Source, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.compressed.Size() == 0 {
		return block.NewSliceSource(nil, 0, 0), nil
	}
	r, err := c.codec.NewReader(c.compressed.Reader())
	if err != nil {
		return nil, ioError("decode", c.compressed.Path(), err)
	}
	return &pathSource{
		ReaderSource: block.NewReaderSource(r, c.opts.readBufferSize),
		path:         c.compressed.Path(),
	}, nil
}

// Verify checks that the compressed source decodes to the raw source.
func (c *Column[T]) Verify(mode VerifyMode) error {
	if mode == VerifyNone {
		return nil
	}
	src, err := c.compressedSource()
	if err != nil {
		return err
	}
	defer closeSource(src)

	raw := c.raw.Bytes()
	var off int
	for {
		b, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if off+len(b) > len(raw) {
			return &FormatMismatchError{
				Path:   c.compressed.Path(),
				Reason: fmt.Sprintf("decompresses to more than the %d raw bytes", len(raw)),
			}
		}
		if mode == VerifyContent && !bytes.Equal(raw[off:off+len(b)], b) {
			return &FormatMismatchError{
				Path:   c.compressed.Path(),
				Reason: fmt.Sprintf("content differs from raw source near byte %d", off),
			}
		}
		off += len(b)
	}
	if off != len(raw) {
		return &FormatMismatchError{
			Path:   c.compressed.Path(),
			Reason: fmt.Sprintf("decompresses to %d bytes, raw source has %d", off, len(raw)),
		}
	}
	return nil
}

// Close unmaps both sources. It is idempotent.
func (c *Column[T]) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.values = nil
	return errors.Join(c.raw.Close(), c.compressed.Close())
}

// pathSource maps decoder errors onto the store's error taxonomy.
type pathSource struct {
	*block.ReaderSource
	path string
}

func (s *pathSource) Next() ([]byte, error) {
	b, err := s.ReaderSource.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ioError("decode", s.path, err)
	}
	return b, err
}

func closeSource(src block.Source) {
	if c, ok := src.(io.Closer); ok {
		_ = c.Close()
	}
}
