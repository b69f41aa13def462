package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd is the Zstandard frame format with content checksums.
type Zstd struct {
	// Level is the encoder level; zero means zstd.SpeedDefault.
	Level zstd.EncoderLevel
}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }

// Ext returns ".zst".
func (Zstd) Ext() string { return ".zst" }

// NewWriter implements Codec.
func (c Zstd) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := c.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(level),
		zstd.WithEncoderCRC(true),
	)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// NewReader implements Codec.
// Decoding is single-threaded; iteration is a synchronous pull.
func (Zstd) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
