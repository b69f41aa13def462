package codec

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":      nil,
		"small":      []byte("hello"),
		"repetitive": bytes.Repeat([]byte("column data "), 50000),
	}

	for _, c := range All() {
		for name, data := range inputs {
			t.Run(c.Name()+"/"+name, func(t *testing.T) {
				compressed, err := Compress(c, data)
				require.NoError(t, err)

				out, err := Decompress(c, compressed)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(out))
				assert.True(t, bytes.Equal(data, out))
			})
		}
	}
}

func TestCodecs_Compresses(t *testing.T) {
	data := bytes.Repeat([]byte{0, 0, 0, 0x80, 5, 0, 0, 0}, 10000)
	for _, c := range All() {
		compressed, err := Compress(c, data)
		require.NoError(t, err)
		assert.Less(t, len(compressed), len(data)/2, c.Name())
	}
}

func TestCodecs_SmallReads(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 4096)
	for _, c := range All() {
		compressed, err := Compress(c, data)
		require.NoError(t, err)

		r, err := c.NewReader(iotest.OneByteReader(bytes.NewReader(compressed)))
		require.NoError(t, err)
		out, err := io.ReadAll(iotest.HalfReader(r))
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, data, out, c.Name())
	}
}

func TestCodecs_CorruptInput(t *testing.T) {
	// Pseudo-random bytes keep the frame dominated by checksummed payload.
	data := make([]byte, 4096)
	x := uint32(2463534242)
	for i := range data {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		data[i] = byte(x)
	}
	for _, c := range All() {
		compressed, err := Compress(c, data)
		require.NoError(t, err)

		corrupt := bytes.Clone(compressed)
		corrupt[len(corrupt)/2] ^= 0xFF
		_, err = Decompress(c, corrupt)
		assert.Error(t, err, c.Name())
	}
}

func TestByName(t *testing.T) {
	for _, c := range All() {
		got, ok := ByName(c.Name())
		require.True(t, ok)
		assert.Equal(t, c.Name(), got.Name())
	}
	_, ok := ByName("gzip")
	assert.False(t, ok)
}

func TestForPath(t *testing.T) {
	c, ok := ForPath("/tmp/t/int32col1.bin.lz4")
	require.True(t, ok)
	assert.Equal(t, "lz4", c.Name())

	c, ok = ForPath("col.bin.zst")
	require.True(t, ok)
	assert.Equal(t, "zstd", c.Name())

	_, ok = ForPath("col.bin")
	assert.False(t, ok)
}

func BenchmarkDecompress(b *testing.B) {
	data := bytes.Repeat([]byte{0, 0, 0, 0x80, 42, 0, 0, 0}, 1<<17)
	for _, c := range All() {
		compressed, err := Compress(c, data)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, err := Decompress(c, compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
