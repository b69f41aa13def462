package codec

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// S2 is the S2 stream format (a Snappy extension) with CRC-checked blocks.
type S2 struct {
	// Better trades encoding speed for ratio.
	Better bool
}

// Name returns "s2".
func (S2) Name() string { return "s2" }

// Ext returns ".s2".
func (S2) Ext() string { return ".s2" }

// NewWriter implements Codec.
func (c S2) NewWriter(w io.Writer) (io.WriteCloser, error) {
	opts := []s2.WriterOption{s2.WriterConcurrency(1)}
	if c.Better {
		opts = append(opts, s2.WriterBetterCompression())
	}
	return s2.NewWriter(w, opts...), nil
}

// NewReader implements Codec.
func (S2) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
