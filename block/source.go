package block

import (
	"bufio"
	"io"
)

// DefaultBlockSize is the block size used when none is configured.
const DefaultBlockSize = 64 * 1024

// Source produces successive opaque byte blocks of a stream.
//
// Next returns io.EOF once the stream is exhausted. The returned slice is only
// valid until the next call to Next. Concatenating every block in order
// reproduces the full stream; block boundaries carry no meaning.
type Source interface {
	Next() ([]byte, error)
}

// SliceSource yields zero-copy chunks of an in-memory buffer.
type SliceSource struct {
	data      []byte
	off       int
	blockSize int
}

// NewSliceSource returns a Source over data yielding blocks of at most
// blockSize bytes. If width > 0, blockSize is rounded down to a multiple of
// width (but never below width) so every block starts on a value boundary.
func NewSliceSource(data []byte, blockSize, width int) *SliceSource {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if width > 0 {
		blockSize -= blockSize % width
		if blockSize < width {
			blockSize = width
		}
	}
	return &SliceSource{data: data, blockSize: blockSize}
}

// Next implements Source.
func (s *SliceSource) Next() ([]byte, error) {
	if s.off >= len(s.data) {
		return nil, io.EOF
	}
	end := min(s.off+s.blockSize, len(s.data))
	b := s.data[s.off:end]
	s.off = end
	return b, nil
}

// ReaderSource pulls blocks from an io.Reader through a buffered reader.
// The block size is whatever the buffered reader hands back per fill, bounded
// by its buffer size.
type ReaderSource struct {
	r      *bufio.Reader
	closer io.Closer
	done   bool
}

// NewReaderSource wraps r. bufSize bounds the block size (DefaultBlockSize if
// <= 0). If r implements io.Closer it is closed by Close.
func NewReaderSource(r io.Reader, bufSize int) *ReaderSource {
	if bufSize <= 0 {
		bufSize = DefaultBlockSize
	}
	s := &ReaderSource{r: bufio.NewReaderSize(r, bufSize)}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Next implements Source.
func (s *ReaderSource) Next() ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	// Peek(1) forces a fill; Buffered then reports everything the fill read.
	if _, err := s.r.Peek(1); err != nil {
		s.done = true
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	b, err := s.r.Peek(s.r.Buffered())
	if err != nil {
		return nil, err
	}
	if _, err := s.r.Discard(len(b)); err != nil {
		return nil, err
	}
	return b, nil
}

// Close closes the underlying reader if it is closable.
func (s *ReaderSource) Close() error {
	s.done = true
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}

// FuncSource adapts a function to Source.
type FuncSource func() ([]byte, error)

// Next implements Source.
func (f FuncSource) Next() ([]byte, error) { return f() }
