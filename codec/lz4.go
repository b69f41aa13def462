package codec

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4 is the LZ4 frame format with per-block checksums.
//
// Readers verify checksums when they are present in the frame.
type LZ4 struct {
	// Level is the compression level; zero means lz4.Fast.
	Level lz4.CompressionLevel
	// BlockSize is the frame block size; zero means lz4.Block4Mb.
	BlockSize lz4.BlockSize
}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }

// Ext returns ".lz4".
func (LZ4) Ext() string { return ".lz4" }

// NewWriter implements Codec.
func (c LZ4) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)

	blockSize := c.BlockSize
	if blockSize == 0 {
		blockSize = lz4.Block4Mb
	}
	opts := []lz4.Option{
		lz4.BlockSizeOption(blockSize),
		lz4.BlockChecksumOption(true),
		lz4.ChecksumOption(true),
	}
	if c.Level != 0 {
		opts = append(opts, lz4.CompressionLevelOption(c.Level))
	}
	if err := zw.Apply(opts...); err != nil {
		return nil, err
	}
	return zw, nil
}

// NewReader implements Codec.
func (LZ4) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
