package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colq/block"
	"github.com/hupe1980/colq/codec"
	"github.com/hupe1980/colq/column"
	"github.com/hupe1980/colq/internal/typed"
	"github.com/hupe1980/colq/testutil"
)

func drain[T column.Value](t *testing.T, it *block.Iterator[T]) []T {
	t.Helper()
	out := []T{}
	for v := range it.All() {
		out = append(out, v)
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())
	return out
}

func TestColumn_AccessModesAgree(t *testing.T) {
	rng := testutil.NewRNG(42)
	want := rng.Int64Column(10000, 0.5)

	for _, c := range codec.All() {
		t.Run(c.Name(), func(t *testing.T) {
			raw, comp := testutil.WriteColumn(t, t.TempDir(), "int64col1.bin", want, c)

			col, err := Open[int64](raw, comp, WithBlockSize(1000), WithReadBufferSize(333))
			require.NoError(t, err)
			defer col.Close()

			assert.Equal(t, c.Name(), col.Codec().Name())
			assert.Equal(t, column.Int64, col.Kind())
			assert.Equal(t, len(want), col.Len())
			assert.Equal(t, want, col.Values())
			assert.Equal(t, want, drain(t, col.RawIterator()))

			it, err := col.CompressedIterator()
			require.NoError(t, err)
			assert.Equal(t, want, drain(t, it))
		})
	}
}

func TestColumn_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(1)
	want := rng.Int32Column(4096, 0.9)
	raw, comp := testutil.WriteColumn(t, t.TempDir(), "int32col1.bin", want, codec.LZ4{})

	col, err := Open[int32](raw, comp)
	require.NoError(t, err)
	defer col.Close()

	compressed, err := os.ReadFile(comp)
	require.NoError(t, err)
	decoded, err := codec.Decompress(col.Codec(), compressed)
	require.NoError(t, err)

	vals, err := typed.Slice[int32](decoded)
	require.NoError(t, err)
	assert.Equal(t, col.Values(), vals)
}

func TestColumn_BlockSizes(t *testing.T) {
	rng := testutil.NewRNG(5)
	want := rng.Int32Column(999, 0.2)
	raw, comp := testutil.WriteColumn(t, t.TempDir(), "c.bin", want, codec.Zstd{})

	for _, size := range []int{1, 4, 12, 4000, 1 << 20} {
		col, err := Open[int32](raw, comp, WithBlockSize(size), WithReadBufferSize(size+16))
		require.NoError(t, err)

		assert.Equal(t, want, drain(t, col.RawIterator()), "block size %d", size)
		it, err := col.CompressedIterator()
		require.NoError(t, err)
		assert.Equal(t, want, drain(t, it), "buffer size %d", size)
		require.NoError(t, col.Close())
	}
}

func TestColumn_Empty(t *testing.T) {
	for _, c := range codec.All() {
		t.Run(c.Name(), func(t *testing.T) {
			raw, comp := testutil.WriteColumn(t, t.TempDir(), "empty.bin", []int64{}, c)

			col, err := Open[int64](raw, comp, WithVerify(VerifyContent))
			require.NoError(t, err)
			defer col.Close()

			assert.Equal(t, 0, col.Len())
			assert.Empty(t, col.Values())
			assert.Empty(t, drain(t, col.RawIterator()))

			it, err := col.CompressedIterator()
			require.NoError(t, err)
			assert.Empty(t, drain(t, it))
		})
	}
}

func TestColumn_Restartable(t *testing.T) {
	rng := testutil.NewRNG(9)
	want := rng.Int64Column(777, 0.3)
	raw, comp := testutil.WriteColumn(t, t.TempDir(), "c.bin", want, codec.S2{})

	col, err := Open[int64](raw, comp)
	require.NoError(t, err)
	defer col.Close()

	first, err := col.CompressedIterator()
	require.NoError(t, err)
	a := drain(t, first)

	second, err := col.CompressedIterator()
	require.NoError(t, err)
	b := drain(t, second)

	assert.Equal(t, want, a)
	assert.Equal(t, a, b)
	assert.Equal(t, drain(t, col.RawIterator()), drain(t, col.RawIterator()))
}

func TestOpen_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	raw, comp := testutil.WriteColumn(t, dir, "c.bin", []int32{1, 2, 3}, codec.LZ4{})

	_, err := Open[int32](filepath.Join(dir, "nope.bin"), comp)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open[int32](raw, filepath.Join(dir, "nope.bin.lz4"))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_RawLengthNotMultiple(t *testing.T) {
	dir := t.TempDir()
	raw, comp := testutil.WriteColumn(t, dir, "c.bin", []int32{1, 2}, codec.LZ4{})

	col, err := Open[int64](raw, comp)
	require.NoError(t, err, "8 bytes are one int64")
	require.NoError(t, col.Close())

	require.NoError(t, os.WriteFile(raw, make([]byte, 6), 0o644))
	_, err = Open[int32](raw, comp, WithVerify(VerifyNone))
	assert.ErrorIs(t, err, ErrFormatMismatch)

	var fm *FormatMismatchError
	require.ErrorAs(t, err, &fm)
	assert.Equal(t, raw, fm.Path)
}

func TestOpen_Verify(t *testing.T) {
	dir := t.TempDir()
	raw, _ := testutil.WriteColumn(t, dir, "a.bin", []int32{1, 2, 3}, codec.LZ4{})
	_, sameLen := testutil.WriteColumn(t, dir, "b.bin", []int32{1, 2, 4}, codec.LZ4{})
	_, shorter := testutil.WriteColumn(t, dir, "c.bin", []int32{1, 2}, codec.LZ4{})
	_, longer := testutil.WriteColumn(t, dir, "d.bin", []int32{1, 2, 3, 4}, codec.LZ4{})

	tests := []struct {
		name       string
		compressed string
		mode       VerifyMode
		mismatch   bool
	}{
		{"same length, length check", sameLen, VerifyLength, false},
		{"same length, content check", sameLen, VerifyContent, true},
		{"shorter", shorter, VerifyLength, true},
		{"longer", longer, VerifyLength, true},
		{"longer, unchecked", longer, VerifyNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, err := Open[int32](raw, tc.compressed, WithVerify(tc.mode))
			if tc.mismatch {
				assert.ErrorIs(t, err, ErrFormatMismatch)
				return
			}
			require.NoError(t, err)
			require.NoError(t, col.Close())
		})
	}
}

func TestOpen_CorruptCompressed(t *testing.T) {
	dir := t.TempDir()
	raw, comp := testutil.WriteColumn(t, dir, "c.bin", testutil.NewRNG(3).Int64Column(512, 0.5), codec.LZ4{})
	require.NoError(t, os.WriteFile(comp, []byte("definitely not an lz4 frame"), 0o644))

	_, err := Open[int64](raw, comp)
	assert.ErrorIs(t, err, ErrIO)

	col, err := Open[int64](raw, comp, WithVerify(VerifyNone))
	require.NoError(t, err)
	defer col.Close()

	it, err := col.CompressedIterator()
	require.NoError(t, err)
	for range it.All() {
	}
	assert.ErrorIs(t, it.Err(), ErrIO)
}

func TestColumn_Close(t *testing.T) {
	raw, comp := testutil.WriteColumn(t, t.TempDir(), "c.bin", []int64{1, 2}, codec.LZ4{})
	col, err := Open[int64](raw, comp)
	require.NoError(t, err)

	require.NoError(t, col.Close())
	require.NoError(t, col.Close())

	assert.Nil(t, col.Values())
	assert.Equal(t, 2, col.Len())
	assert.ErrorIs(t, col.WillNeed(), ErrClosed)

	_, err = col.View()
	assert.ErrorIs(t, err, ErrClosed)

	it := col.RawIterator()
	_, ok := it.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, it.Err(), ErrClosed)

	_, err = col.CompressedIterator()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestColumn_Paths(t *testing.T) {
	raw, comp := testutil.WriteColumn(t, t.TempDir(), "c.bin", []int32{7}, codec.Zstd{})
	col, err := Open[int32](raw, comp)
	require.NoError(t, err)
	defer col.Close()

	require.NoError(t, col.WillNeed())
	assert.Equal(t, raw, col.RawPath())
	assert.Equal(t, comp, col.CompressedPath())
	assert.Positive(t, col.CompressedSize())
	assert.Equal(t, "zstd", col.Codec().Name())
}
