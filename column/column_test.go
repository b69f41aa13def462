package column

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNull_IsMinimum(t *testing.T) {
	assert.Equal(t, int32(math.MinInt32), Null[int32]())
	assert.Equal(t, int64(math.MinInt64), Null[int64]())

	assert.True(t, IsNull(Null[int32]()))
	assert.True(t, IsNull(Null[int64]()))
}

func TestIsNull_OnlySentinel(t *testing.T) {
	for _, v := range []int32{math.MinInt32 + 1, -1, 0, 1, 100, math.MaxInt32} {
		assert.False(t, IsNull(v), "int32 %d", v)
	}
	for _, v := range []int64{math.MinInt64 + 1, math.MinInt32, -1, 0, 10000, math.MaxInt64} {
		assert.False(t, IsNull(v), "int64 %d", v)
	}
}

func TestKindTable(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		width int
		null  int64
	}{
		{Int32, "int32", 4, math.MinInt32},
		{Int64, "int64", 8, math.MinInt64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.kind.Valid())
			assert.Equal(t, tc.name, tc.kind.String())
			assert.Equal(t, tc.width, tc.kind.Width())
			assert.Equal(t, tc.null, tc.kind.Null())
			assert.Positive(t, tc.kind.Bound())

			parsed, err := ParseKind(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, parsed)
		})
	}

	assert.False(t, Invalid.Valid())
	assert.Equal(t, 0, Invalid.Width())
	assert.Equal(t, "kind(9)", Kind(9).String())

	_, err := ParseKind("float32")
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Int32, KindOf[int32]())
	assert.Equal(t, Int64, KindOf[int64]())
	assert.Equal(t, 4, Width[int32]())
	assert.Equal(t, 8, Width[int64]())
}

func TestKind_FileName(t *testing.T) {
	assert.Equal(t, "int32col1.bin", Int32.FileName())
	assert.Equal(t, "int64col1.bin", Int64.FileName())
}
