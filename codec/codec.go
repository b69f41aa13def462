// Package codec provides the block-compression codecs used for the
// compressed copy of a column.
//
// A codec is a streaming, block-framed encoder/decoder pair. The column store
// treats the decoder as an opaque producer of decompressed bytes; the codec's
// internal block size never matters to readers.
//
// The codec of a compressed column file is identified by its extension
// (".lz4", ".zst", ".s2"), see ForPath.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Codec creates streaming compressors and decompressors.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Name returns the stable name of the codec.
	Name() string
	// Ext returns the file extension, including the leading dot.
	Ext() string
	// NewWriter returns a writer compressing into w. Closing it flushes the
	// final frame but does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
	// NewReader returns a reader decompressing r. Closing it releases decoder
	// resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Default is the codec used when none is configured.
var Default Codec = LZ4{}

// All returns the built-in codecs.
func All() []Codec {
	return []Codec{LZ4{}, Zstd{}, S2{}}
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch strings.ToLower(name) {
	case "lz4":
		return LZ4{}, true
	case "zstd", "zst":
		return Zstd{}, true
	case "s2":
		return S2{}, true
	default:
		return nil, false
	}
}

// ForPath selects a built-in codec from a file extension.
func ForPath(path string) (Codec, bool) {
	ext := filepath.Ext(path)
	for _, c := range All() {
		if c.Ext() == ext {
			return c, true
		}
	}
	return nil, false
}

// Compress compresses data in one shot. Used by tests and tooling.
func Compress(c Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := c.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return buf.Bytes(), nil
}

// Decompress decompresses data in one shot. Empty input decodes to empty
// output for every codec.
func Decompress(c Codec, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r, err := c.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return out, nil
}
