package typed

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alignedBytes returns a byte slice backed by uint64 storage so that its
// first byte is 8-byte aligned.
func alignedBytes(n int) []byte {
	backing := make([]int64, (n+7)/8+1)
	return Bytes(backing)[:n]
}

func TestSlice_NativeOrder(t *testing.T) {
	b := alignedBytes(12)
	binary.NativeEndian.PutUint32(b[0:], uint32(math.MaxUint32)) // -1
	binary.NativeEndian.PutUint32(b[4:], 5)
	binary.NativeEndian.PutUint32(b[8:], 1<<31) // MinInt32

	vals, err := Slice[int32](b)
	require.NoError(t, err)
	assert.Equal(t, []int32{-1, 5, math.MinInt32}, vals)
}

func TestSlice_ZeroCopy(t *testing.T) {
	b := alignedBytes(16)
	vals, err := Slice[int64](b)
	require.NoError(t, err)
	require.Len(t, vals, 2)

	binary.NativeEndian.PutUint64(b[8:], 42)
	assert.Equal(t, int64(42), vals[1])
}

func TestSlice_DropsTrailingBytes(t *testing.T) {
	b := alignedBytes(19)
	vals, err := Slice[int64](b)
	require.NoError(t, err)
	assert.Len(t, vals, 2)

	vals32, err := Slice[int32](b[:3])
	require.NoError(t, err)
	assert.Empty(t, vals32)
}

func TestSlice_Empty(t *testing.T) {
	vals, err := Slice[int32](nil)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestSlice_Misaligned(t *testing.T) {
	b := alignedBytes(32)

	_, err := Slice[int64](b[1:])
	assert.ErrorIs(t, err, ErrMisaligned)

	_, err = Slice[int32](b[2:])
	assert.ErrorIs(t, err, ErrMisaligned)

	// 4-byte offsets are fine for int32.
	vals, err := Slice[int32](b[4:])
	require.NoError(t, err)
	assert.Len(t, vals, 7)

	assert.False(t, Aligned[int64](b[4:]))
	assert.True(t, Aligned[int32](b[4:]))
}

func TestBytes_RoundTrip(t *testing.T) {
	in := []int64{1, math.MinInt64, -7}
	out, err := Slice[int64](Bytes(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Nil(t, Bytes[int32](nil))
}
